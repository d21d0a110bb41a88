// Package navguard provides the session and navigation-guard core for a
// restaurant ordering client: a Redis-backed session triple store, best-effort
// bearer-token expiry inspection, a session lifecycle controller, and the
// route-classification rules the guards enforce.
//
// The package is designed for event-driven client workloads: Controller
// methods are safe to call from multiple goroutines after initialization
// through [Builder.Build], and all session mutations are serialized through
// one controller-owned mutex.
//
// # Architecture boundaries
//
// navguard is the public surface. It exposes [Controller], [Builder],
// [Config], and value types (UserType, AuthState, AuditEvent, etc.).
// Leaf concerns live in subpackages — token payload inspection in token/,
// triple persistence in store/, pure route classification in route/ — and
// the navigation/render guards that consume the Controller live in guard/.
//
// # What this package must NOT do
//
//   - Render UI, decode QR codes, or talk to payment providers; those are
//     collaborator concerns behind the [Router], [Alerter], and
//     [TokenBinder] interfaces.
//   - Verify token signatures. The server owning the real business logic is
//     the enforcement backstop; this core only inspects expiry, and it
//     fails open when the payload cannot be decoded.
//   - Propagate storage or decode errors across its public boundary. Public
//     operations return booleans or redirect through the Router; failures
//     are logged and degrade to "unauthenticated".
package navguard
