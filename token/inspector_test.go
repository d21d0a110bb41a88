package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func fixedInspector(margin time.Duration, now time.Time) *Inspector {
	i := NewInspector(margin)
	i.now = func() time.Time { return now }
	return i
}

func TestInspectMissingToken(t *testing.T) {
	i := NewInspector(0)
	v := i.Inspect("")
	if v.Outcome != OutcomeMissing {
		t.Fatalf("outcome = %v, want missing", v.Outcome)
	}
	if v.Usable() {
		t.Fatal("missing token must not be usable")
	}
}

func TestInspectUndecodableToken(t *testing.T) {
	cases := []string{
		"garbage",
		"one.two",
		"a.b.c.d",
		"!!!.###.$$$",
	}
	i := NewInspector(0)
	for _, raw := range cases {
		v := i.Inspect(raw)
		if v.Outcome != OutcomeUndecodable {
			t.Fatalf("Inspect(%q) = %v, want undecodable", raw, v.Outcome)
		}
		if !v.Usable() {
			t.Fatalf("Inspect(%q): undecodable must stay usable", raw)
		}
	}
}

func TestInspectNoExpClaim(t *testing.T) {
	now := time.Now()
	i := fixedInspector(DefaultExpiryMargin, now)

	raw := signedToken(t, jwt.MapClaims{"sub": "u-1"})
	v := i.Inspect(raw)
	if v.Outcome != OutcomeValid {
		t.Fatalf("outcome = %v, want valid", v.Outcome)
	}
	if !v.ExpiresAt.IsZero() {
		t.Fatalf("ExpiresAt = %v, want zero for missing exp", v.ExpiresAt)
	}
}

func TestInspectExpiredWithinMargin(t *testing.T) {
	now := time.Now()
	i := fixedInspector(5*time.Minute, now)

	// Expires in 2 minutes: real-time valid, but inside the 5-minute margin.
	raw := signedToken(t, jwt.MapClaims{"exp": now.Add(2 * time.Minute).Unix()})
	v := i.Inspect(raw)
	if v.Outcome != OutcomeExpired {
		t.Fatalf("outcome = %v, want expired", v.Outcome)
	}
	if v.Usable() {
		t.Fatal("expired token must not be usable")
	}
}

func TestInspectValidBeyondMargin(t *testing.T) {
	now := time.Now()
	i := fixedInspector(5*time.Minute, now)

	raw := signedToken(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()})
	v := i.Inspect(raw)
	if v.Outcome != OutcomeValid {
		t.Fatalf("outcome = %v, want valid", v.Outcome)
	}
	if v.ExpiresAt.IsZero() {
		t.Fatal("ExpiresAt should carry the parsed exp")
	}
}

func TestInspectLongExpiredToken(t *testing.T) {
	now := time.Now()
	i := fixedInspector(5*time.Minute, now)

	raw := signedToken(t, jwt.MapClaims{"exp": now.Add(-24 * time.Hour).Unix()})
	if v := i.Inspect(raw); v.Outcome != OutcomeExpired {
		t.Fatalf("outcome = %v, want expired", v.Outcome)
	}
}

func TestNewInspectorDefaultsMargin(t *testing.T) {
	if got := NewInspector(0).Margin(); got != DefaultExpiryMargin {
		t.Fatalf("Margin() = %v, want %v", got, DefaultExpiryMargin)
	}
	if got := NewInspector(-time.Minute).Margin(); got != DefaultExpiryMargin {
		t.Fatalf("Margin() = %v, want %v", got, DefaultExpiryMargin)
	}
	if got := NewInspector(time.Minute).Margin(); got != time.Minute {
		t.Fatalf("Margin() = %v, want %v", got, time.Minute)
	}
}

func TestNilInspector(t *testing.T) {
	var i *Inspector
	if v := i.Inspect("anything"); v.Outcome != OutcomeUndecodable {
		t.Fatalf("nil inspector outcome = %v, want undecodable", v.Outcome)
	}
	if i.Margin() != DefaultExpiryMargin {
		t.Fatal("nil inspector should report the default margin")
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeValid:       "valid",
		OutcomeExpired:     "expired",
		OutcomeUndecodable: "undecodable",
		OutcomeMissing:     "missing",
		Outcome(99):        "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", outcome, got, want)
		}
	}
}
