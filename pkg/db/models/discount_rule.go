package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// DiscountRule is a configured volume-discount threshold. Rules are global
// configuration, not owned by any single quote.
type DiscountRule struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name                 string          `gorm:"column:name;not null"`
	ApplicableCategories pq.StringArray  `gorm:"column:applicable_categories;type:text[];not null"`
	MinimumQuantity      int             `gorm:"column:minimum_quantity;not null"`
	DiscountPercentage   decimal.Decimal `gorm:"column:discount_percentage;type:numeric(6,3);not null"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name for GORM.
func (DiscountRule) TableName() string {
	return "discount_rules"
}
