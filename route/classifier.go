package route

import "strings"

// Canonical routes of the client. These mirror the paths registered by the
// navigation layer; home routes are matched exactly, login routes by
// substring.
const (
	// CustomerHome is an exported constant or variable used by the session guard.
	CustomerHome = "/customer-home"
	// ManagerHome is an exported constant or variable used by the session guard.
	ManagerHome = "/dashboard"
	// ChefHome is an exported constant or variable used by the session guard.
	ChefHome = "/chef-home"

	// CustomerLogin is an exported constant or variable used by the session guard.
	CustomerLogin = "/Customer-Login"
	// StaffLogin is an exported constant or variable used by the session guard.
	StaffLogin = "/login"
	// ChefLogin is an exported constant or variable used by the session guard.
	ChefLogin = "/chef-login"
)

const (
	typeCustomer = "customer"
	typeManager  = "manager"
	typeChef     = "chef"
)

// loginRouteNames are matched case-insensitively as substrings of the path.
var loginRouteNames = [...]string{"customer-login", "login", "chef-login"}

// HomeRouteFor maps a persisted user-type value to its home route. Unknown
// or empty types land on the customer home, the safe default surface.
func HomeRouteFor(userType string) string {
	switch strings.ToLower(strings.TrimSpace(userType)) {
	case typeManager:
		return ManagerHome
	case typeChef:
		return ChefHome
	default:
		return CustomerHome
	}
}

// LoginRouteFor maps a persisted user-type value to the login screen that
// collects its credentials. Unknown or empty types default to the customer
// login; the logout flow applies its own staff-login default instead.
func LoginRouteFor(userType string) string {
	switch strings.ToLower(strings.TrimSpace(userType)) {
	case typeManager:
		return StaffLogin
	case typeChef:
		return ChefLogin
	default:
		return CustomerLogin
	}
}

// IsLoginRoute reports whether path names any known login screen. Matching
// is case-insensitive and substring-based to catch route variants.
func IsLoginRoute(path string) bool {
	if path == "" {
		return false
	}
	p := strings.ToLower(path)
	for _, name := range loginRouteNames {
		if strings.Contains(p, name) {
			return true
		}
	}
	return false
}

// IsHomeRoute reports whether path is exactly the home route for the given
// user type.
func IsHomeRoute(path, userType string) bool {
	return path == HomeRouteFor(userType)
}
