package types

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Attachment points at a generated artifact stored outside the quote record.
// The URL may be a time-limited signed link or, when signing was unavailable,
// the raw storage object path.
type Attachment struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Type       string    `json:"type"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
	UploadedBy string    `json:"uploadedBy,omitempty"`
}

// Attachments is the append-only artifact list persisted as JSONB.
type Attachments []Attachment

// Value serializes the attachments to JSON.
func (a Attachments) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// Scan decodes JSONB into the attachment slice.
func (a *Attachments) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	raw, err := asJSON(value)
	if err != nil {
		return err
	}
	var decoded Attachments
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return err
	}
	*a = decoded
	return nil
}
