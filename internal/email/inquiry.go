package email

import (
	"context"
	"fmt"
	"html"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

// InquiryNotifier tells the marketplace owner about a new lead.
type InquiryNotifier struct {
	sender Sender
	to     string
}

func NewInquiryNotifier(sender Sender, to string) *InquiryNotifier {
	return &InquiryNotifier{sender: sender, to: to}
}

func (n *InquiryNotifier) NotifyNewInquiry(ctx context.Context, inq *domain.Inquiry) error {
	budget := inq.Budget
	if budget == "" {
		budget = "Not specified"
	}
	reseller := "No"
	if inq.Reseller {
		reseller = "Yes"
	}

	subject := fmt.Sprintf("New inquiry for %s", inq.DomainName)
	body := fmt.Sprintf(
		`<p><strong>%s</strong> (%s) asked about <strong>%s</strong>.</p>`+
			`<p>Budget: %s<br>Reseller: %s</p><blockquote>%s</blockquote>`,
		html.EscapeString(inq.Name),
		html.EscapeString(inq.Email),
		html.EscapeString(inq.DomainName),
		html.EscapeString(budget),
		reseller,
		html.EscapeString(inq.Message),
	)
	if err := n.sender.Send(ctx, n.to, subject, body); err != nil {
		return fmt.Errorf("notify new inquiry: %w", err)
	}
	return nil
}

// Ping delegates to the sender when it can report its own health.
func (n *InquiryNotifier) Ping(ctx context.Context) error {
	if p, ok := n.sender.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
