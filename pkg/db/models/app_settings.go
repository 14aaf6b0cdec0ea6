package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppSettings is the single-row global configuration record (tax rate today,
// more knobs later).
type AppSettings struct {
	ID        int             `gorm:"column:id;primaryKey"`
	GSTRate   decimal.Decimal `gorm:"column:gst_rate;type:numeric(6,3);not null"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name for GORM.
func (AppSettings) TableName() string {
	return "app_settings"
}
