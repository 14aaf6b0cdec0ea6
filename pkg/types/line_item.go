package types

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AppliedVolumeDiscount records the rule applied to a line so downstream
// consumers (and repeat pricing runs) can see what already happened.
type AppliedVolumeDiscount struct {
	Label      string          `json:"label"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

// LineItem is one priced row of a quote. UnitPrice reflects any volume
// discount already applied; OriginalUnitPrice always carries the pre-discount
// price so re-pricing starts from the same base.
type LineItem struct {
	ID                    string                 `json:"id"`
	Name                  string                 `json:"name"`
	Description           string                 `json:"description,omitempty"`
	Quantity              int                    `json:"quantity"`
	UnitPrice             decimal.Decimal        `json:"unitPrice"`
	OriginalUnitPrice     decimal.Decimal        `json:"originalUnitPrice"`
	Cost                  decimal.Decimal        `json:"cost"`
	MarkupPercent         decimal.Decimal        `json:"markupPercent"`
	Category              string                 `json:"category,omitempty"`
	TotalPrice            decimal.Decimal        `json:"totalPrice"`
	AppliedVolumeDiscount *AppliedVolumeDiscount `json:"appliedVolumeDiscount,omitempty"`
}

// BaseUnitPrice returns the price volume discounts should be computed from.
func (li LineItem) BaseUnitPrice() decimal.Decimal {
	if li.OriginalUnitPrice.IsPositive() {
		return li.OriginalUnitPrice
	}
	return li.UnitPrice
}

// LineItems is a line-item slice persisted as JSONB.
type LineItems []LineItem

// Value serializes the line items to JSON.
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan decodes JSONB into the line-item slice.
func (l *LineItems) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded LineItems
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*l = decoded
	return nil
}
