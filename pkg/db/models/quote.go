package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/quotedesk/quotedesk-backend/pkg/types"
)

// Quote is the persisted quote snapshot. Pricing and rendering never mutate a
// row directly; they receive a snapshot and hand back new values.
type Quote struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteNumber string            `gorm:"column:quote_number;not null;unique"`
	ClientInfo  types.ClientInfo  `gorm:"column:client_info;type:jsonb"`
	LineItems   types.LineItems   `gorm:"column:line_items;type:jsonb;not null"`
	Totals      types.QuoteTotals `gorm:"column:totals;type:jsonb"`
	Attachments types.Attachments `gorm:"column:attachments;type:jsonb;not null"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (Quote) TableName() string {
	return "quotes"
}
