package migrate

import (
	"context"

	"github.com/quotedesk/quotedesk-backend/pkg/config"
	"github.com/quotedesk/quotedesk-backend/pkg/db"
	"github.com/quotedesk/quotedesk-backend/pkg/logger"
)

// MaybeRunDev applies migrations at boot when the auto-migrate flag is set.
// Production deploys run cmd/migrate explicitly instead.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	sqlDB, err := client.SQLDB()
	if err != nil {
		return err
	}

	if logg != nil {
		logg.Info(ctx, "running auto migrations")
	}
	return Up(ctx, sqlDB, DefaultDir)
}
