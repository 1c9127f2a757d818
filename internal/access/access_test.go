package access

import (
	"testing"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

func TestCanAccess(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	user := &domain.User{ID: 2, Role: domain.RoleUser}

	tests := []struct {
		route string
		user  *domain.User
		want  bool
	}{
		{"/", nil, true},
		{"/domain/techstartup.com", nil, true},
		{"/auth/login", nil, true},
		{"/auth/register", user, true},
		{"/auth/logout", nil, false},
		{"/auth/logout", user, true},
		{"/profile", nil, false},
		{"/profile", user, true},
		{"/profile/", admin, true},
		{"/admin", nil, false},
		{"/admin", user, false},
		{"/admin", admin, true},
		{"/admin/domains", user, false},
		{"/admin/analytics/export", admin, true},
		{"/administrator", nil, true},
	}

	for _, tc := range tests {
		role := "anonymous"
		if tc.user != nil {
			role = string(tc.user.Role)
		}
		t.Run(tc.route+" as "+role, func(t *testing.T) {
			if got := CanAccess(tc.route, tc.user); got != tc.want {
				t.Errorf("CanAccess(%q) = %v, want %v", tc.route, got, tc.want)
			}
		})
	}
}
