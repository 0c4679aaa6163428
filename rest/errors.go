package rest

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidURL is returned when the base URL and endpoint path do not
	// combine into a parseable absolute URL.
	ErrInvalidURL = errors.New("invalid request url")
	// ErrEncoding is returned when an endpoint body fails JSON serialization.
	ErrEncoding = errors.New("request body encoding failed")
	// ErrDecoding is returned when a 2xx response body cannot be decoded as
	// the expected envelope.
	ErrDecoding = errors.New("response decoding failed")
	// ErrNetwork wraps transport-level failures (DNS, timeout, connection
	// reset). Timeouts are not a distinct kind.
	ErrNetwork = errors.New("network failure")
	// ErrUnauthorized is returned for 401 responses.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned for 400, 402, and 403 responses.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")
	// ErrValidation is returned for 422 responses; the concrete error is a
	// [*ValidationError] carrying field-level messages.
	ErrValidation = errors.New("validation failed")
	// ErrServer is returned for 5xx responses; the concrete error is a
	// [*StatusError] carrying the status code.
	ErrServer = errors.New("server error")
	// ErrUnknown is returned for status codes outside every handled range.
	ErrUnknown = errors.New("unexpected response status")
	// ErrNoData is returned by [DecodeRequired] when a successful envelope
	// carries no payload.
	ErrNoData = errors.New("no data in response")
	// ErrAPI is returned when a 2xx envelope reports success=false.
	ErrAPI = errors.New("api error")
)

// fallbackUnauthorizedMessage is used when a 401 body carries no parseable
// error message.
const fallbackUnauthorizedMessage = "Authentication required"

// FieldError is one entry of the envelope's errors list. Field is empty for
// errors not attributable to a single input field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// StatusError carries the HTTP status code for server-side and
// unclassified failures. It matches [ErrServer] or [ErrUnknown] under
// [errors.Is] depending on the originating range.
type StatusError struct {
	Code int
	kind error
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v (status %d)", e.kind, e.Code)
}

func (e *StatusError) Unwrap() error {
	return e.kind
}

// ValidationError carries the field-level messages of a 422 response.
// It matches [ErrValidation] under [errors.Is].
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}

	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field != "" {
			msgs = append(msgs, f.Field+": "+f.Message)
			continue
		}
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Messages returns the bare message strings, for callers mapping
// validation failures onto form fields.
func (e *ValidationError) Messages() []string {
	out := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		out[i] = f.Message
	}
	return out
}
