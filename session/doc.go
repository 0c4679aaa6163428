// Package session holds the client's process-wide session state: who is
// signed in, their role, and which event is currently selected, with the
// derived "event still active" flag and the screen the UI should route to.
//
// # Atomicity
//
// All mutations go through the [Manager] under one mutex: a reader can
// never observe a newly selected event paired with the previous event's
// active flag.
//
// # Persistence
//
// A small subset — role, the selected event's display fields, and the
// active flag — is persisted to the kv store so the app resumes where it
// left off. On load the active flag is re-validated against the current
// time, which handles relaunch after the event expired while the app was
// closed. Unparseable persisted state is treated as absent, never as an
// error.
//
// # What this package must NOT do
//
//   - Issue HTTP requests. The refresh hook fired when an event becomes
//     active is an opaque callback supplied by the client.
//   - Interpret bearer tokens beyond asking the token store to clear on
//     logout.
package session
