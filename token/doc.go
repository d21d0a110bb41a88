// Package token inspects bearer tokens for expiry without verifying their
// signatures.
//
// # Design
//
// The client never holds signing keys, so [Inspector.Inspect] only decodes
// the JWT payload segment (via the unverified parser from golang-jwt) and
// reads the exp claim. A token that cannot be decoded is reported as
// [OutcomeUndecodable] — an explicit branch that callers treat as valid,
// because the server rejecting a genuinely expired token on the next call
// is the real enforcement backstop.
//
// # What this package must NOT do
//
//   - Verify signatures or issuers.
//   - Perform I/O.
//   - Import any other navguard package.
package token
