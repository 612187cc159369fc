// Package routeguard decides whether the current session may enter a
// route. It is pure: the caller performs the actual navigation.
package routeguard

import "github.com/kasmetics/storefront/client/state"

// Requirement is the access level a route declares.
type Requirement int

const (
	// RequireNone admits everyone, logged in or not.
	RequireNone Requirement = iota
	// RequireAuthenticated admits any logged-in session.
	RequireAuthenticated
	// RequireAdmin admits only sessions with the admin role.
	RequireAdmin
)

// Decision is the outcome of evaluating a route against a session.
type Decision int

const (
	// Allow admits the navigation.
	Allow Decision = iota
	// RedirectLogin sends an unauthenticated visitor to the login page.
	RedirectLogin
	// RedirectHome sends an authenticated but under-privileged visitor
	// back to the home page.
	RedirectHome
)

const adminRole = "admin"

// Evaluate checks the session against the route's requirement.
func Evaluate(s state.State, requirement Requirement) Decision {
	switch requirement {
	case RequireAuthenticated:
		if !s.IsAuthenticated {
			return RedirectLogin
		}
		return Allow
	case RequireAdmin:
		if !s.IsAuthenticated {
			return RedirectLogin
		}
		if s.UserRole != adminRole {
			return RedirectHome
		}
		return Allow
	default:
		return Allow
	}
}
