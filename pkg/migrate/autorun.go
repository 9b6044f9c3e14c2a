package migrate

import (
	"context"
	"fmt"

	"github.com/vasstra/vasstra-storefront/pkg/config"
	"github.com/vasstra/vasstra-storefront/pkg/db"
	"github.com/vasstra/vasstra-storefront/pkg/kv"
	"github.com/vasstra/vasstra-storefront/pkg/logger"
)

// MaybeRunDev brings the snapshot table up to date automatically when the
// app runs in dev mode with the auto-migrate flag enabled. SQLite runs
// lean on GORM's auto-migration; Postgres runs use the goose files.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	if cfg.FeatureFlags.UseSQLite {
		logg.Info(ctx, "auto-migrating snapshot table (sqlite)")
		if err := client.DB().AutoMigrate(&kv.Snapshot{}); err != nil {
			return fmt.Errorf("auto-migrate snapshots: %w", err)
		}
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running goose migrations (dev auto-run)")
	if err := Up(ctx, sqlDB); err != nil {
		return err
	}
	logg.Info(ctx, "goose migrations completed")
	return nil
}
