// Package cache provides the client's two caches: a generic scope-keyed
// TTL cache for fetched collections (recommendations per event) and an
// in-memory image cache that de-duplicates concurrent loads of the same
// URL.
//
// # Fail-closed reads
//
// A TTL read is a hit only when the stored scope key matches the requested
// one AND the entry is younger than the TTL. Every failure path — scope
// mismatch, expiry, missing field, deserialization error — clears the
// cache and reports a miss. Partially-valid or stale data is never
// returned; this layer is a continuity optimization, so corrupt state is
// treated as absent rather than as an error.
package cache
