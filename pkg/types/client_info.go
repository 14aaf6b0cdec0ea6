package types

import (
	"database/sql/driver"
	"encoding/json"
)

// ClientInfo is the customer block rendered on quote documents. Every field is
// optional; empty fields are skipped when printing.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Company string `json:"company,omitempty"`
	Contact string `json:"contact,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Value serializes the client block to JSONB.
func (c ClientInfo) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan decodes JSONB into the client block.
func (c *ClientInfo) Scan(value interface{}) error {
	if value == nil {
		*c = ClientInfo{}
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, c)
}
