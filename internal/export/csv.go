// Package export renders the admin downloads.
package export

import (
	"strings"

	"github.com/ErlanBelekov/netzone/internal/domain"
)

const (
	InquiriesFilename = "inquiries.csv"
	unknownDomain     = "Unknown Domain"
	noBudget          = "Not specified"
)

var inquiryHeader = []string{"Date", "Domain", "Name", "Email", "Budget", "Reseller", "Status", "Message"}

// InquiriesCSV writes one row per inquiry. domainNames resolves the current
// name of each domain id; ids it does not know render as Unknown Domain.
// The message column is always quoted, other columns only when needed.
func InquiriesCSV(inquiries []*domain.Inquiry, domainNames map[int64]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(inquiryHeader, ","))

	for _, inq := range inquiries {
		name, ok := domainNames[inq.DomainID]
		if !ok {
			name = unknownDomain
		}
		budget := inq.Budget
		if budget == "" {
			budget = noBudget
		}
		reseller := "No"
		if inq.Reseller {
			reseller = "Yes"
		}

		b.WriteByte('\n')
		for i, v := range []string{
			inq.CreatedAt.UTC().Format("2006-01-02"),
			name,
			inq.Name,
			inq.Email,
			budget,
			reseller,
			string(inq.Status),
		} {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(csvField(v))
		}
		b.WriteByte(',')
		b.WriteString(quote(inq.Message))
	}
	return []byte(b.String())
}

func csvField(s string) string {
	if strings.ContainsAny(s, ",\"\r\n") {
		return quote(s)
	}
	return s
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
