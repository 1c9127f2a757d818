package domain

import (
	"errors"
	"time"
)

var ErrDomainNotFound = errors.New("domain not found")

type DomainStatus string

const (
	DomainPendingVerification DomainStatus = "pending_verification"
	DomainActive              DomainStatus = "active"
	DomainSold                DomainStatus = "sold"
	DomainArchived            DomainStatus = "archived"
)

// DomainStatuses lists every status in the order the domain manager shows them.
var DomainStatuses = []DomainStatus{
	DomainActive,
	DomainPendingVerification,
	DomainSold,
	DomainArchived,
}

func (s DomainStatus) Valid() bool {
	switch s {
	case DomainPendingVerification, DomainActive, DomainSold, DomainArchived:
		return true
	}
	return false
}

// Domain is a domain name listed for sale.
type Domain struct {
	ID           int64
	DomainName   string
	Nameservers  []string // at most two, blanks removed on add
	Status       DomainStatus
	Price        float64
	Tagline      string
	ThemeVariant int
	VerifiedAt   *time.Time
	CreatedAt    time.Time
}

// DomainPatch carries a partial update. Nil fields are left untouched.
type DomainPatch struct {
	DomainName   *string
	Nameservers  []string // nil = untouched
	Status       *DomainStatus
	Price        *float64
	Tagline      *string
	ThemeVariant *int
	VerifiedAt   *time.Time
}

// Apply merges the non-nil fields of p into d.
func (p DomainPatch) Apply(d *Domain) {
	if p.DomainName != nil {
		d.DomainName = *p.DomainName
	}
	if p.Nameservers != nil {
		d.Nameservers = append(make([]string, 0, len(p.Nameservers)), p.Nameservers...)
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Tagline != nil {
		d.Tagline = *p.Tagline
	}
	if p.ThemeVariant != nil {
		d.ThemeVariant = *p.ThemeVariant
	}
	if p.VerifiedAt != nil {
		t := *p.VerifiedAt
		d.VerifiedAt = &t
	}
}

// Clone returns a deep copy so callers can't mutate store state.
func (d *Domain) Clone() *Domain {
	c := *d
	c.Nameservers = append(make([]string, 0, len(d.Nameservers)), d.Nameservers...)
	if d.VerifiedAt != nil {
		t := *d.VerifiedAt
		c.VerifiedAt = &t
	}
	return &c
}

// Theme is the colour scheme of a landing page.
type Theme struct {
	Gradient string `json:"gradient"`
	Accent   string `json:"accent"`
}

var (
	DefaultTheme = Theme{Gradient: "from-primary-600 to-primary-700", Accent: "primary"}

	themes = map[int]Theme{
		1: {Gradient: "from-blue-600 to-purple-700", Accent: "blue"},
		2: {Gradient: "from-green-600 to-teal-700", Accent: "green"},
		3: {Gradient: "from-orange-600 to-red-700", Accent: "orange"},
	}
)

// ThemeFor returns the landing theme for a variant, falling back to DefaultTheme.
func ThemeFor(variant int) Theme {
	if t, ok := themes[variant]; ok {
		return t
	}
	return DefaultTheme
}
