// Package httpjson holds the JSON response envelope shared by API handlers.
package httpjson

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// MaxBodyBytes bounds request bodies accepted by DecodeBody.
const MaxBodyBytes = 1 << 20

// ErrInvalidBody is returned for malformed or oversized JSON bodies.
var ErrInvalidBody = errors.New("httpjson: invalid JSON body")

// InvalidBodyMessage is the client-facing error for ErrInvalidBody.
const InvalidBodyMessage = "Invalid JSON body"

// ErrorResponse is the failure envelope: {ok:false,error}.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Write encodes payload with the given status.
func Write(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(payload)
}

// Error writes {ok:false,error:msg}. An empty msg omits the error field.
func Error(w http.ResponseWriter, status int, msg string) {
	Write(w, status, ErrorResponse{OK: false, Error: msg})
}

// DecodeBody decodes a single JSON value from r into dst. An empty body
// decodes as an empty object; anything after the value is rejected.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return ErrInvalidBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return ErrInvalidBody
	}
	return nil
}
