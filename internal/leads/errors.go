package leads

import "errors"

var (
	// ErrMissingNameOrEmail is returned when name or email is blank
	ErrMissingNameOrEmail = errors.New("leads: name and email are required")

	// ErrNotDelivered is returned when no sink accepted the lead
	ErrNotDelivered = errors.New("leads: no sink accepted the lead")

	// ErrSinkNotConfigured is returned when building a sink without its settings
	ErrSinkNotConfigured = errors.New("leads: sink not configured")
)
