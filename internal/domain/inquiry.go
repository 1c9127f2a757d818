package domain

import (
	"errors"
	"time"
)

var ErrInquiryNotFound = errors.New("inquiry not found")

// InquiryStatus has no enforced transitions; any value may follow any other.
type InquiryStatus string

const (
	InquiryNew         InquiryStatus = "new"
	InquiryReplied     InquiryStatus = "replied"
	InquiryNegotiating InquiryStatus = "negotiating"
	InquiryClosed      InquiryStatus = "closed"
)

var InquiryStatuses = []InquiryStatus{
	InquiryNew,
	InquiryReplied,
	InquiryNegotiating,
	InquiryClosed,
}

func (s InquiryStatus) Valid() bool {
	switch s {
	case InquiryNew, InquiryReplied, InquiryNegotiating, InquiryClosed:
		return true
	}
	return false
}

// Budget ranges offered by the inquiry form. Empty means not specified.
const (
	BudgetUnder5k  = "under-5k"
	Budget5kTo10k  = "5k-10k"
	Budget10kTo25k = "10k-25k"
	Budget25kTo50k = "25k-50k"
	BudgetOver50k  = "over-50k"
)

// Inquiry is a lead submitted by a prospective buyer.
type Inquiry struct {
	ID         int64
	DomainID   int64
	DomainName string // copy taken at submission time
	Name       string
	Email      string
	Message    string
	Budget     string
	Reseller   bool
	Status     InquiryStatus
	CreatedAt  time.Time
}

type InquiryPatch struct {
	Status   *InquiryStatus
	Budget   *string
	Reseller *bool
	Message  *string
}

func (p InquiryPatch) Apply(i *Inquiry) {
	if p.Status != nil {
		i.Status = *p.Status
	}
	if p.Budget != nil {
		i.Budget = *p.Budget
	}
	if p.Reseller != nil {
		i.Reseller = *p.Reseller
	}
	if p.Message != nil {
		i.Message = *p.Message
	}
}
