package memory

import (
	"fmt"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

var defaultNameservers = []string{"ns1.netzone.me", "ns2.netzone.me"}

// SeedDomains returns the demo portfolio shown on a fresh start.
func SeedDomains(now time.Time) []*domain.Domain {
	verified := now
	return []*domain.Domain{
		{
			ID:           1,
			DomainName:   "techstartup.com",
			Nameservers:  defaultNameservers,
			Status:       domain.DomainActive,
			Price:        15000,
			Tagline:      "Perfect for your next tech venture",
			ThemeVariant: 1,
			VerifiedAt:   &verified,
			CreatedAt:    now,
		},
		{
			ID:           2,
			DomainName:   "digitalagency.net",
			Nameservers:  defaultNameservers,
			Status:       domain.DomainActive,
			Price:        8500,
			Tagline:      "Ideal for digital marketing agencies",
			ThemeVariant: 2,
			VerifiedAt:   &verified,
			CreatedAt:    now,
		},
		{
			ID:           3,
			DomainName:   "ecommercehub.io",
			Nameservers:  defaultNameservers,
			Status:       domain.DomainPendingVerification,
			Price:        12000,
			Tagline:      "E-commerce ready domain",
			ThemeVariant: 3,
			CreatedAt:    now,
		},
	}
}

type seedUser struct {
	id       int64
	email    string
	password string
	name     string
	role     domain.Role
}

// Demo credentials shown on the login page.
var seedUsers = []seedUser{
	{1, "admin@netzone.me", "admin123", "Admin User", domain.RoleAdmin},
	{2, "user@example.com", "user123", "Regular User", domain.RoleUser},
}

// SeedAccounts builds the fixed user table, hashing each demo password with hash.
func SeedAccounts(now time.Time, hash func(password string) ([]byte, error)) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(seedUsers))
	for _, u := range seedUsers {
		h, err := hash(u.password)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", u.email, err)
		}
		accounts = append(accounts, &domain.Account{
			User: domain.User{
				ID:        u.id,
				Email:     u.email,
				Name:      u.name,
				Role:      u.role,
				CreatedAt: now,
			},
			PasswordHash: h,
		})
	}
	return accounts, nil
}
