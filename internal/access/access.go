// Package access decides which routes a session may open.
package access

import (
	"strings"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

type Level int

const (
	Public Level = iota
	Authenticated
	Admin
)

// Required returns the access level a route path needs. Unknown paths
// are public; the router answers 404 for them.
func Required(route string) Level {
	route = "/" + strings.Trim(route, "/")
	switch {
	case route == "/admin" || strings.HasPrefix(route, "/admin/"):
		return Admin
	case route == "/profile" || strings.HasPrefix(route, "/profile/"), route == "/auth/logout":
		return Authenticated
	default:
		return Public
	}
}

// CanAccess reports whether user (nil when anonymous) may open route.
func CanAccess(route string, user *domain.User) bool {
	switch Required(route) {
	case Admin:
		return user.IsAdmin()
	case Authenticated:
		return user != nil
	default:
		return true
	}
}
