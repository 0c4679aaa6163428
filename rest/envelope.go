package rest

import (
	"encoding/json"
	"fmt"
)

// Envelope is the backend's uniform response wrapper. Data is a pointer so
// an envelope with success=true and no payload decodes to an absent value
// rather than a default-constructed one.
type Envelope[T any] struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    *T           `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// errorBody is the simplified shape the backend uses for 401 and 422
// responses. Decoding it is best-effort; an unparseable body falls back to
// generic messages.
type errorBody struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Decode maps (status, body) onto a typed payload or a taxonomy error.
//
//	2xx      envelope decode; a malformed body is a loud ErrDecoding,
//	         success=false is ErrAPI with the envelope message
//	401      Unauthorized with the body's message, or the fallback
//	400–403  ErrForbidden (the backend conflates these; preserved as-is)
//	404      ErrNotFound
//	422      *ValidationError from the body's errors list
//	5xx      *StatusError wrapping ErrServer
//	other    *StatusError wrapping ErrUnknown
//
// A successful envelope with absent data returns (nil, nil); use
// [DecodeRequired] when the call site cannot proceed without a payload.
func Decode[T any](status int, body []byte) (*T, error) {
	switch {
	case status >= 200 && status <= 299:
		var env Envelope[T]
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecoding, err)
		}
		if !env.Success {
			if env.Message != "" {
				return nil, fmt.Errorf("%w: %s", ErrAPI, env.Message)
			}
			return nil, ErrAPI
		}
		return env.Data, nil

	case status == 401:
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, eb.Message)
		}
		return nil, fmt.Errorf("%w: %s", ErrUnauthorized, fallbackUnauthorizedMessage)

	case status >= 400 && status <= 403:
		return nil, ErrForbidden

	case status == 404:
		return nil, ErrNotFound

	case status == 422:
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err == nil && len(eb.Errors) > 0 {
			return nil, &ValidationError{Fields: eb.Errors}
		}
		return nil, &ValidationError{Fields: []FieldError{{Message: "request validation failed"}}}

	case status >= 500 && status <= 599:
		return nil, &StatusError{Code: status, kind: ErrServer}

	default:
		return nil, &StatusError{Code: status, kind: ErrUnknown}
	}
}

// DecodeRequired is [Decode] for call sites that need a payload: a
// successful envelope with absent data becomes [ErrNoData].
func DecodeRequired[T any](status int, body []byte) (*T, error) {
	data, err := Decode[T](status, body)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrNoData
	}
	return data, nil
}
