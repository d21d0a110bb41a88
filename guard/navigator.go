package guard

import (
	"context"

	"github.com/rs/zerolog"

	navguard "github.com/dineflow/navguard"
	"github.com/dineflow/navguard/route"
)

// NavOptions selects the navigation verb. The zero value means push.
type NavOptions struct {
	// Replace swaps the current history entry instead of pushing a new one.
	Replace bool
}

// Navigator wraps a router with session-aware navigation: it redirects
// authenticated users away from login screens and turns hardware back
// presses into home-anchored decisions.
type Navigator struct {
	ctrl   *navguard.Controller
	router navguard.Router
	exiter navguard.AppExiter
	log    zerolog.Logger
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithExiter supplies the app-exit hook used when back is pressed on a home
// screen. Without it the back press on home falls through to the platform.
func WithExiter(e navguard.AppExiter) NavigatorOption {
	return func(n *Navigator) {
		n.exiter = e
	}
}

// WithLogger supplies the navigator's logger. Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) NavigatorOption {
	return func(n *Navigator) {
		n.log = log
	}
}

// NewNavigator builds a Navigator around ctrl and router. A nil ctrl is
// accepted and disables the login-screen veto.
func NewNavigator(ctrl *navguard.Controller, router navguard.Router, opts ...NavigatorOption) *Navigator {
	n := &Navigator{
		ctrl:   ctrl,
		router: router,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SafeNavigate performs the requested navigation unless the target is a
// login screen and the user is authenticated, in which case it navigates to
// the user's home screen with the same verb instead. Any uncertainty about
// session state lets the original navigation through.
func (n *Navigator) SafeNavigate(ctx context.Context, target string, opts NavOptions) {
	if n == nil || n.router == nil {
		return
	}

	if n.ctrl != nil && route.IsLoginRoute(target) && n.ctrl.IsAuthenticated(ctx) {
		userType, _ := n.ctrl.UserType(ctx)
		home := route.HomeRouteFor(string(userType))
		n.log.Debug().
			Str("target", target).
			Str("redirect", home).
			Msg("login route vetoed for authenticated user")
		n.ctrl.RecordGuardEvent(ctx, navguard.AuditNavigationVetoed, target, string(userType), map[string]string{
			"redirect": home,
		})
		n.navigate(home, opts)
		return
	}

	n.navigate(target, opts)
}

func (n *Navigator) navigate(target string, opts NavOptions) {
	if opts.Replace {
		n.router.Replace(target)
		return
	}
	n.router.Push(target)
}

// HandleBack decides a hardware back press on the screen at current.
// Returns true when the event was consumed. Unauthenticated users and a
// nil controller always fall through to the platform's default handling.
//
// For an authenticated user: back on a login screen jumps home, back on the
// user's home screen exits the app, back anywhere else pops history when
// possible and otherwise jumps home.
func (n *Navigator) HandleBack(ctx context.Context, current string) bool {
	if n == nil || n.ctrl == nil || n.router == nil {
		return false
	}
	if !n.ctrl.IsAuthenticated(ctx) {
		return false
	}

	userType, _ := n.ctrl.UserType(ctx)
	home := route.HomeRouteFor(string(userType))

	switch {
	case route.IsLoginRoute(current):
		// History behind a login screen is stale for a logged-in user.
		n.router.Replace(home)
		n.recordBack(ctx, current, string(userType), "replace", home)
		return true
	case route.IsHomeRoute(current, string(userType)):
		if n.exiter == nil {
			return false
		}
		n.exiter.ExitApp()
		n.recordBack(ctx, current, string(userType), "exit", "")
		return true
	case n.router.CanGoBack():
		return false
	default:
		n.router.Replace(home)
		n.recordBack(ctx, current, string(userType), "replace", home)
		return true
	}
}

func (n *Navigator) recordBack(ctx context.Context, current, userType, action, redirect string) {
	meta := map[string]string{"action": action}
	if redirect != "" {
		meta["redirect"] = redirect
	}
	n.ctrl.RecordGuardEvent(ctx, navguard.AuditBackHandled, current, userType, meta)
}
