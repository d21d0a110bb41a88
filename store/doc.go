// Package store persists the session triple — bearer token, user profile,
// user type — in Redis.
//
// # Design
//
// The triple is the only shared mutable state of the session core, and the
// client must never observe a partial triple. Both the write and the clear
// run as single Lua scripts so the three keys change atomically on the
// storage side; the Controller additionally serializes all mutations behind
// one mutex.
//
// Storing a token also propagates it to the shared HTTP client's default
// Authorization header through the [TokenBinder] collaborator, and clearing
// removes it, so the transport and the persisted state never disagree for
// longer than one call.
//
// # What this package must NOT do
//
//   - Decide authentication. It reports what is stored; policy lives in the
//     Controller.
//   - Swallow Redis errors. They are returned to the caller, which logs and
//     degrades to "unauthenticated".
//   - Import the navguard root package (no import cycles).
package store
