// Package token owns the client's bearer token: at most one active value
// per key, set on successful login or registration, cleared on logout or
// when the backend answers 401. Tokens are opaque to the rest of the
// client and are never logged or embedded in audit events.
//
// Set uses delete-then-insert semantics rather than update-in-place, which
// sidesteps duplicate-entry errors in credential backends that treat an
// existing key as a conflict. Persistence failures are reported to the
// caller, never swallowed; non-critical refresh paths may choose to
// log-and-continue.
package token
