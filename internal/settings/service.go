package settings

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/db/models"
	pkgerrors "github.com/quotedesk/quotedesk-backend/pkg/errors"
)

// Service reads pricing configuration. Settings and rules are fetched fresh
// per request so admin edits take effect immediately.
type Service struct {
	client         *db.Client
	defaultGSTRate decimal.Decimal
}

func NewService(client *db.Client, cfg config.PricingConfig) *Service {
	return &Service{
		client:         client,
		defaultGSTRate: decimal.NewFromFloat(cfg.DefaultGSTRate),
	}
}

// GSTRate returns the configured tax rate, falling back to the default when
// the settings row has never been written.
func (s *Service) GSTRate(ctx context.Context) (decimal.Decimal, error) {
	var row models.AppSettings
	err := s.client.DB().WithContext(ctx).
		Where("id = ?", 1).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultGSTRate, nil
	}
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading app settings")
	}
	return row.GSTRate, nil
}

// DiscountRules returns every configured volume-discount rule in creation
// order. The ordering is part of the pricing contract: rules with equal
// percentages tie-break on position.
func (s *Service) DiscountRules(ctx context.Context) ([]models.DiscountRule, error) {
	var rules []models.DiscountRule
	err := s.client.DB().WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&rules).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading discount rules")
	}
	return rules, nil
}
