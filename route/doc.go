// Package route classifies client paths for the session and navigation
// guards.
//
// All functions are pure and stateless. User types are passed as the
// persisted string values ("customer", "manager", "chef"); matching is
// case-insensitive and unknown values fall back to the customer surface
// for home routes.
//
// Login-route matching is substring-based on purpose: the client has
// historical route variants ("/Customer-Login", "/login", "/chef-login")
// and the guard must catch all of them. The looseness can misclassify an
// unrelated path that embeds a login-route name; that behavior is kept
// as-is rather than silently tightened to exact matching.
package route
