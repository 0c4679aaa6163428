// Package kv abstracts the client's local key/value persistence: the
// session manager's restored subset and the TTL cache's three fields live
// here. Keys are primitive-typed strings, so there are no schema
// migration concerns.
//
// The production implementation is Redis-backed with a namespace prefix
// (one logical store per client instance); [Memory] serves tests and
// embedded use. Unreadable or missing values are reported as absent, not
// as errors — this layer backs continuity optimizations, never
// correctness-critical state.
package kv
