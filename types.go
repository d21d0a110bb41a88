package navguard

import (
	"strings"

	"github.com/dineflow/navguard/store"
)

// UserType identifies which surface of the client a session belongs to.
//
//	Values are persisted as-is in the session store.
type UserType string

const (
	// UserCustomer is an exported constant or variable used by the session guard.
	UserCustomer UserType = "customer"
	// UserManager is an exported constant or variable used by the session guard.
	UserManager UserType = "manager"
	// UserChef is an exported constant or variable used by the session guard.
	UserChef UserType = "chef"
)

// ParseUserType normalizes a persisted user-type value. The second return
// is false for unknown values; callers fall back to their own defaults.
func ParseUserType(raw string) (UserType, bool) {
	switch UserType(strings.ToLower(strings.TrimSpace(raw))) {
	case UserCustomer:
		return UserCustomer, true
	case UserManager:
		return UserManager, true
	case UserChef:
		return UserChef, true
	default:
		return "", false
	}
}

// AuthState is the Controller's lifecycle state.
type AuthState uint8

const (
	// StateUninitialized is an exported constant or variable used by the session guard.
	StateUninitialized AuthState = iota
	// StateUnauthenticated is an exported constant or variable used by the session guard.
	StateUnauthenticated
	// StateAuthenticated is an exported constant or variable used by the session guard.
	StateAuthenticated
)

// String describes the string operation and its observable behavior.
func (s AuthState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Profile is the role-specific user mapping attached to a session.
//
//	Docs: store package.
type Profile = store.Profile

// Triple is one consistent read of the persisted session state.
//
//	Docs: store package.
type Triple = store.Triple

// TokenBinder mirrors the stored token into the shared HTTP client's
// default Authorization header.
//
//	Docs: store package.
type TokenBinder = store.TokenBinder

// NoOpBinder is a TokenBinder that does nothing.
type NoOpBinder = store.NoOpBinder

// Router is the navigation collaborator. Routes are path strings
// (e.g. "/customer-home", "/Customer-Login").
type Router interface {
	Push(route string)
	Replace(route string)
	Back()
	CanGoBack() bool
}

// Alerter surfaces a user-facing error notice, typically a modal dialog.
type Alerter interface {
	Error(message, title string)
}

// AppExiter closes the application. Used by the back handler when the user
// backs out of their home route, the navigation root.
type AppExiter interface {
	ExitApp()
}

type noopAlerter struct{}

func (noopAlerter) Error(string, string) {}
