package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultExpiryMargin is the safety window subtracted from a token's real
// expiry. Tokens inside the window are treated as already expired so that
// in-flight requests do not race the server-side cutoff.
const DefaultExpiryMargin = 5 * time.Minute

// Outcome defines a public type used by navguard APIs.
//
// Outcome instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Outcome uint8

const (
	// OutcomeValid is an exported constant or variable used by the session guard.
	OutcomeValid Outcome = iota
	// OutcomeExpired is an exported constant or variable used by the session guard.
	OutcomeExpired
	// OutcomeUndecodable is an exported constant or variable used by the session guard.
	OutcomeUndecodable
	// OutcomeMissing is an exported constant or variable used by the session guard.
	OutcomeMissing
)

// String describes the string operation and its observable behavior.
func (o Outcome) String() string {
	switch o {
	case OutcomeValid:
		return "valid"
	case OutcomeExpired:
		return "expired"
	case OutcomeUndecodable:
		return "undecodable"
	case OutcomeMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Verdict is the result of a single inspection. ExpiresAt is the zero time
// when the payload carried no readable exp claim.
type Verdict struct {
	Outcome   Outcome
	ExpiresAt time.Time
}

// Usable reports whether the session should keep running on this token.
// Undecodable tokens are usable: decode failure must not brick the client.
func (v Verdict) Usable() bool {
	return v.Outcome == OutcomeValid || v.Outcome == OutcomeUndecodable
}

// Inspector defines a public type used by navguard APIs.
//
// Inspector instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Inspector struct {
	margin time.Duration
	now    func() time.Time
}

// NewInspector describes the newinspector operation and its observable behavior.
//
// NewInspector does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewInspector(margin time.Duration) *Inspector {
	if margin <= 0 {
		margin = DefaultExpiryMargin
	}
	return &Inspector{
		margin: margin,
		now:    time.Now,
	}
}

// Margin describes the margin operation and its observable behavior.
func (i *Inspector) Margin() time.Duration {
	if i == nil {
		return DefaultExpiryMargin
	}
	return i.margin
}

// Inspect decodes raw as an unverified JWT and classifies it.
//
// Classification order:
//  1. Empty token → OutcomeMissing.
//  2. Not three dot-separated segments, or payload not base64url JSON →
//     OutcomeUndecodable (fail-open; callers treat it as valid).
//  3. No readable exp claim → OutcomeValid with unknown expiry.
//  4. exp inside the expiry margin → OutcomeExpired.
func (i *Inspector) Inspect(raw string) Verdict {
	if i == nil {
		return Verdict{Outcome: OutcomeUndecodable}
	}
	if raw == "" {
		return Verdict{Outcome: OutcomeMissing}
	}
	if strings.Count(raw, ".") != 2 {
		return Verdict{Outcome: OutcomeUndecodable}
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return Verdict{Outcome: OutcomeUndecodable}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		// Decodable payload without a usable exp claim: valid, unknown expiry.
		return Verdict{Outcome: OutcomeValid}
	}

	if exp.Time.Before(i.now().Add(i.margin)) {
		return Verdict{Outcome: OutcomeExpired, ExpiresAt: exp.Time}
	}

	return Verdict{Outcome: OutcomeValid, ExpiresAt: exp.Time}
}
