// Package rest implements the typed HTTP layer of the attendly client:
// declarative endpoint descriptors, request construction with ambient
// bearer-token injection, a pluggable transport, and decoding of the
// backend's uniform response envelope into typed payloads or taxonomy
// errors.
//
// # Envelope contract
//
// Every backend response is a JSON envelope {success, message, data,
// errors}. In well-formed responses data is present iff success is true,
// but the decoder tolerates violations: success without data decodes to
// an absent payload, never a zero-valued one, and data on failure is
// ignored. A 2xx body that does not parse as an envelope is a loud
// [ErrDecoding] — malformed payloads are never papered over with
// defaults, so a backend contract break surfaces immediately.
//
// # What this package must NOT do
//
//   - Recover locally from build or decode failures; every failure
//     propagates to the caller as a typed error.
//   - Read or write token, session, or cache state (no upward imports).
//   - Log request or response contents.
package rest
