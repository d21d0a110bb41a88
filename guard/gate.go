package guard

import (
	"context"

	"github.com/rs/zerolog"

	navguard "github.com/dineflow/navguard"
	"github.com/dineflow/navguard/route"
)

// Decision is the outcome of a Gate check.
type Decision uint8

const (
	// DecisionAuthorized means the screen may render.
	DecisionAuthorized Decision = iota
	// DecisionRedirect means the caller must navigate to Result.RedirectTo
	// instead of rendering.
	DecisionRedirect
)

// String describes the string operation and its observable behavior.
func (d Decision) String() string {
	switch d {
	case DecisionAuthorized:
		return "authorized"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Requirement declares what a screen demands before it renders.
type Requirement struct {
	// AuthRequired gates the screen behind a complete, valid session.
	AuthRequired bool
	// UserType, when set, additionally restricts the screen to that type.
	UserType navguard.UserType
	// Path, when set, names the mounting screen's route. Used for audit
	// enrichment only; it does not affect the decision.
	Path string
}

// Result carries the gate's decision and, on redirect, the destination.
type Result struct {
	Decision   Decision
	RedirectTo string
}

// Gate authorizes screen mounts. Check runs session initialization first,
// so it is safe as the single entry point of every screen.
type Gate struct {
	ctrl *navguard.Controller
	log  zerolog.Logger
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithGateLogger supplies the gate's logger. Defaults to a no-op logger.
func WithGateLogger(log zerolog.Logger) GateOption {
	return func(g *Gate) {
		g.log = log
	}
}

// NewGate builds a Gate around ctrl.
func NewGate(ctrl *navguard.Controller, opts ...GateOption) *Gate {
	g := &Gate{
		ctrl: ctrl,
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates req for the mounting screen. Screens without an auth
// requirement always render. Protected screens require a complete session,
// a valid (or undecodable, fail-open) token, and a matching user type; any
// failure redirects to the login screen of the required type, or of the
// actual type when the requirement names none.
func (g *Gate) Check(ctx context.Context, req Requirement) Result {
	if g == nil || g.ctrl == nil {
		if req.AuthRequired {
			return Result{
				Decision:   DecisionRedirect,
				RedirectTo: route.LoginRouteFor(string(req.UserType)),
			}
		}
		return Result{Decision: DecisionAuthorized}
	}

	g.ctrl.InitializeAuth(ctx)

	if !req.AuthRequired {
		return Result{Decision: DecisionAuthorized}
	}

	if !g.ctrl.IsAuthenticated(ctx) {
		return g.redirect(ctx, req, "", "not authenticated")
	}

	// ValidateAndRefresh owns the alert and the logout redirect on expiry;
	// the gate's job here is only to block the render.
	if !g.ctrl.ValidateAndRefresh(ctx, true) {
		return g.redirect(ctx, req, "", "session invalid")
	}

	actual, ok := g.ctrl.UserType(ctx)
	if req.UserType != "" && (!ok || actual != req.UserType) {
		return g.redirect(ctx, req, string(actual), "user type mismatch")
	}

	return Result{Decision: DecisionAuthorized}
}

func (g *Gate) redirect(ctx context.Context, req Requirement, actualType, reason string) Result {
	target := string(req.UserType)
	if target == "" {
		target = actualType
	}
	dest := route.LoginRouteFor(target)

	g.log.Debug().
		Str("reason", reason).
		Str("redirect", dest).
		Msg("render blocked")

	g.ctrl.RecordGuardEvent(ctx, navguard.AuditRenderBlocked, req.Path, actualType, map[string]string{
		"reason":   reason,
		"redirect": dest,
	})

	return Result{
		Decision:   DecisionRedirect,
		RedirectTo: dest,
	}
}
