package attendly

import "github.com/attendly/attendly-go/rest"

// The error taxonomy lives in package rest; these aliases let SDK users
// match every kind without importing the subpackage. Callers are expected
// to map ErrUnauthorized to a re-authentication prompt, ErrValidation to
// field-level form errors, and everything else to a generic retryable
// message.
var (
	// ErrInvalidURL is an exported error kind of the client taxonomy.
	ErrInvalidURL = rest.ErrInvalidURL
	// ErrEncoding is an exported error kind of the client taxonomy.
	ErrEncoding = rest.ErrEncoding
	// ErrDecoding is an exported error kind of the client taxonomy.
	ErrDecoding = rest.ErrDecoding
	// ErrNetwork is an exported error kind of the client taxonomy.
	ErrNetwork = rest.ErrNetwork
	// ErrUnauthorized is an exported error kind of the client taxonomy.
	ErrUnauthorized = rest.ErrUnauthorized
	// ErrForbidden is an exported error kind of the client taxonomy.
	ErrForbidden = rest.ErrForbidden
	// ErrNotFound is an exported error kind of the client taxonomy.
	ErrNotFound = rest.ErrNotFound
	// ErrValidation is an exported error kind of the client taxonomy.
	ErrValidation = rest.ErrValidation
	// ErrServer is an exported error kind of the client taxonomy.
	ErrServer = rest.ErrServer
	// ErrUnknown is an exported error kind of the client taxonomy.
	ErrUnknown = rest.ErrUnknown
	// ErrNoData is an exported error kind of the client taxonomy.
	ErrNoData = rest.ErrNoData
	// ErrAPI is an exported error kind of the client taxonomy.
	ErrAPI = rest.ErrAPI
)
