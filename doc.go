// Package attendly is the typed Go client for the Attendly
// event-networking backend: authentication, event membership, attendee
// matching recommendations, and profile media, behind the backend's
// uniform {success, message, data, errors} response envelope.
//
// The package is designed for a single logical consumer issuing
// async request/response calls; the session manager and caches serialize
// their own mutations, so a Client is safe to share across goroutines
// after [Builder.Build].
//
// # Architecture boundaries
//
// attendly is the public surface. It exposes [Client], [Builder],
// [Config], the error taxonomy, and value types. The mechanics live in
// subpackages: rest (endpoint descriptors, transport, envelope decoding),
// token (bearer-token store and introspection), session (session state
// and navigation resolution), cache (TTL and image caches), kv (local
// persistence), storage (object storage).
//
// # What this package must NOT do
//
//   - Keep package-level singletons; every Client is explicitly
//     constructed and tests substitute fakes through the Builder.
//   - Log or audit bearer tokens.
//   - Mask backend contract breaks: malformed 2xx payloads surface as
//     [ErrDecoding], never as silently defaulted values.
package attendly
