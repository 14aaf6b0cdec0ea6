package quotes

import (
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

// CalculateTotalsResponse echoes the repriced line items next to the derived
// totals so clients can persist both in one step.
type CalculateTotalsResponse struct {
	LineItems []types.LineItem  `json:"lineItems"`
	Totals    types.QuoteTotals `json:"totals"`
}

// GeneratePDFResponse describes the published artifact.
type GeneratePDFResponse struct {
	Success bool             `json:"success"`
	File    types.Attachment `json:"file"`
}
