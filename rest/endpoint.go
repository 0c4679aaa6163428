package rest

import "net/http"

// Method is the HTTP method of an [Endpoint].
type Method string

const (
	// MethodGet is an exported constant for endpoint construction.
	MethodGet Method = http.MethodGet
	// MethodPost is an exported constant for endpoint construction.
	MethodPost Method = http.MethodPost
	// MethodPut is an exported constant for endpoint construction.
	MethodPut Method = http.MethodPut
	// MethodPatch is an exported constant for endpoint construction.
	MethodPatch Method = http.MethodPatch
	// MethodDelete is an exported constant for endpoint construction.
	MethodDelete Method = http.MethodDelete
)

// Endpoint is a declarative description of one backend call: path relative
// to the client's base URL, method, query parameters, extra headers, and an
// optional JSON body. Endpoints are immutable values constructed per call
// site; authorization is never part of an Endpoint — the request builder
// injects the ambient bearer token.
type Endpoint struct {
	Path    string
	Method  Method
	Query   map[string]string
	Headers map[string]string
	Body    any
}
