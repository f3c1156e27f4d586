package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// HRA_AUTO_MIGRATE is enabled. Postgres runs the goose SQL migrations; SQLite gets
// its schema from GORM AutoMigrate over the supplied models.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client, models ...any) error {
	if !cfg.App.IsDev() || !cfg.Migrate.AutoMigrate {
		return nil
	}
	if client == nil {
		return fmt.Errorf("database client is required for auto-migrate")
	}

	dir := cfg.Migrate.Dir
	if dir == "" {
		dir = DefaultDir
	}
	meta := map[string]any{"env": cfg.App.Env, "driver": cfg.DB.Driver, "dir": dir}
	ctx = logg.WithFields(ctx, meta)

	if cfg.DB.Driver == config.DBDriverSQLite {
		logg.Info(ctx, "running GORM auto-migrate (dev auto-run)")
		if err := client.DB().WithContext(ctx).AutoMigrate(models...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
		logg.Info(ctx, "GORM auto-migrate completed")
		return nil
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	logg.Info(ctx, "running Goose migrations (dev auto-run)")
	if err := Run(ctx, sqlDB, dir, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}

	logg.Info(ctx, "Goose migrations completed")
	return nil
}
