package collabs

import "errors"

var (
	// ErrMissingImageOrCaption is returned when image or caption is blank
	ErrMissingImageOrCaption = errors.New("collabs: image and caption are required")
)
