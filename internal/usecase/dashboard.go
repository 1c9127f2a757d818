package usecase

import (
	"context"
	"slices"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

const recentInquiryLimit = 5

type DashboardStats struct {
	TotalDomains    int               `json:"total_domains"`
	ActiveDomains   int               `json:"active_domains"`
	SoldDomains     int               `json:"sold_domains"`
	TotalInquiries  int               `json:"total_inquiries"`
	NewInquiries    int               `json:"new_inquiries"`
	PortfolioValue  float64           `json:"portfolio_value"`
	RecentInquiries []*domain.Inquiry `json:"recent_inquiries"`
}

type DashboardUsecase struct {
	domains   *DomainUsecase
	inquiries *InquiryUsecase
}

func NewDashboardUsecase(domains *DomainUsecase, inquiries *InquiryUsecase) *DashboardUsecase {
	return &DashboardUsecase{domains: domains, inquiries: inquiries}
}

// Stats summarises the portfolio. Recent inquiries are the last five
// submitted, newest first.
func (u *DashboardUsecase) Stats(ctx context.Context) (DashboardStats, error) {
	ds, err := u.domains.List(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}
	inqs, err := u.inquiries.List(ctx, "")
	if err != nil {
		return DashboardStats{}, err
	}

	s := DashboardStats{TotalDomains: len(ds), TotalInquiries: len(inqs)}
	for _, d := range ds {
		switch d.Status {
		case domain.DomainActive:
			s.ActiveDomains++
		case domain.DomainSold:
			s.SoldDomains++
		}
		s.PortfolioValue += d.Price
	}
	for _, inq := range inqs {
		if inq.Status == domain.InquiryNew {
			s.NewInquiries++
		}
	}

	recent := inqs[max(0, len(inqs)-recentInquiryLimit):]
	s.RecentInquiries = slices.Clone(recent)
	slices.Reverse(s.RecentInquiries)
	return s, nil
}
