package handler

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

type domainResponse struct {
	ID           int64               `json:"id"`
	DomainName   string              `json:"domain_name"`
	Nameservers  []string            `json:"nameservers"`
	Status       domain.DomainStatus `json:"status"`
	Price        float64             `json:"price"`
	Tagline      string              `json:"tagline"`
	ThemeVariant int                 `json:"theme_variant"`
	VerifiedAt   *time.Time          `json:"verified_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

func toDomainResponse(d *domain.Domain) domainResponse {
	ns := d.Nameservers
	if ns == nil {
		ns = []string{}
	}
	return domainResponse{
		ID:           d.ID,
		DomainName:   d.DomainName,
		Nameservers:  ns,
		Status:       d.Status,
		Price:        d.Price,
		Tagline:      d.Tagline,
		ThemeVariant: d.ThemeVariant,
		VerifiedAt:   d.VerifiedAt,
		CreatedAt:    d.CreatedAt,
	}
}

func toDomainResponses(ds []*domain.Domain) []domainResponse {
	out := make([]domainResponse, len(ds))
	for i, d := range ds {
		out[i] = toDomainResponse(d)
	}
	return out
}

type inquiryResponse struct {
	ID         int64                `json:"id"`
	DomainID   int64                `json:"domain_id"`
	DomainName string               `json:"domain_name"`
	Name       string               `json:"name"`
	Email      string               `json:"email"`
	Message    string               `json:"message"`
	Budget     string               `json:"budget"`
	Reseller   bool                 `json:"reseller"`
	Status     domain.InquiryStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func toInquiryResponse(i *domain.Inquiry) inquiryResponse {
	return inquiryResponse{
		ID:         i.ID,
		DomainID:   i.DomainID,
		DomainName: i.DomainName,
		Name:       i.Name,
		Email:      i.Email,
		Message:    i.Message,
		Budget:     i.Budget,
		Reseller:   i.Reseller,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
	}
}

func toInquiryResponses(is []*domain.Inquiry) []inquiryResponse {
	out := make([]inquiryResponse, len(is))
	for i, inq := range is {
		out[i] = toInquiryResponse(inq)
	}
	return out
}

type userResponse struct {
	ID        int64       `json:"id"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role, CreatedAt: u.CreatedAt}
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

// parsePrice accepts a JSON number or a numeric string.
func parsePrice(n json.Number) (float64, bool) {
	f, err := n.Float64()
	return f, err == nil && f >= 0
}
