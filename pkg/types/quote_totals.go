package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/quotedesk/quotedesk-backend/pkg/enums"
)

// QuoteTotals is the computed money summary for a quote. Discount holds the
// resolved amount, not the configured percentage.
type QuoteTotals struct {
	Subtotal     decimal.Decimal    `json:"subtotal"`
	Discount     decimal.Decimal    `json:"discount"`
	DiscountType enums.DiscountType `json:"discountType"`
	GST          decimal.Decimal    `json:"gst"`
	Total        decimal.Decimal    `json:"total"`
}

// Value serializes the totals to JSONB.
func (q QuoteTotals) Value() (driver.Value, error) {
	return json.Marshal(q)
}

// Scan decodes JSONB into the totals record.
func (q *QuoteTotals) Scan(value interface{}) error {
	if value == nil {
		*q = QuoteTotals{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, q)
}
