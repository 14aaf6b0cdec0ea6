package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/enums"
	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

// CalculateTotalsRequest carries the draft line items plus any quote-level
// discount. An absent lineItems array prices an empty quote, which is valid.
type CalculateTotalsRequest struct {
	LineItems    []types.LineItem   `json:"lineItems"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType enums.DiscountType `json:"discountType"`
}

// GeneratePDFRequest identifies the quote to render. Older clients send the
// snake_case key, so both spellings are accepted.
type GeneratePDFRequest struct {
	QuoteID       string `json:"quoteId"`
	QuoteIDLegacy string `json:"quote_id"`
}

// ID returns whichever quote id the client supplied.
func (r GeneratePDFRequest) ID() string {
	if r.QuoteID != "" {
		return r.QuoteID
	}
	return r.QuoteIDLegacy
}
