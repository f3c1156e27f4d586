package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/angelmondragon/hra-tradeshow-backend/internal/catalog"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
	force   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.cmd, "cmd", "up", "up|down|status|version|create|validate|seed")
	flag.StringVar(&opts.dir, "dir", "", "goose migrations directory (defaults to HRA_MIGRATIONS_DIR)")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
	flag.BoolVar(&opts.force, "force", false, "seed even when the catalog already has rows")
	flag.Parse()

	_ = godotenv.Load()
	bootLog := logger.New(logger.Options{ServiceName: "migrate"})

	cfg, err := config.Load()
	if err != nil {
		bootLog.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.Log.Level),
		WarnStack:   cfg.Log.WarnStack,
		Format:      cfg.Log.Format,
	})

	opts.dir = firstNonEmpty(opts.dir, cfg.Migrate.Dir, migrate.DefaultDir)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": opts.cmd,
		"dir": opts.dir,
	})

	if err := run(ctx, cfg, logg, opts); err != nil {
		logg.Error(ctx, "migrate.failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "migrate.done")
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, opts options) (err error) {
	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return errors.New("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(opts.dir, opts.name)
		if err != nil {
			return err
		}
		fmt.Println("created migration:", path)
		return nil
	case "validate":
		return migrate.ValidateDir(opts.dir)
	}

	if cfg.DB.DSN == "" {
		return fmt.Errorf("%s is not set", config.EnvDBDSN)
	}
	client, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, client.Close()) }()

	if opts.cmd == "seed" {
		return seed(ctx, logg, catalog.NewRepository(client.DB()), opts.force)
	}

	sqlDB, err := client.DB().DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	return goose(ctx, sqlDB, opts)
}

func goose(ctx context.Context, sqlDB *sql.DB, opts options) error {
	switch opts.cmd {
	case "up", "down", "status", "redo", "reset":
		return migrate.Run(ctx, sqlDB, opts.dir, opts.cmd)
	case "version":
		if opts.version == "" {
			return errors.New("missing -version for version command")
		}
		return migrate.MigrateToVersion(ctx, sqlDB, opts.dir, opts.version)
	default:
		return fmt.Errorf("unknown -cmd value %q", opts.cmd)
	}
}

// seed writes the built-in trade show catalog and test users.
func seed(ctx context.Context, logg *logger.Logger, repo *catalog.Repository, force bool) error {
	empty, err := repo.Empty(ctx)
	if err != nil {
		return err
	}
	if !empty && !force {
		logg.Warn(ctx, "catalog already seeded; pass -force to overwrite")
		return nil
	}
	snap := catalog.Builtin()
	users := catalog.BuiltinTestUsers()
	if err := repo.Save(ctx, snap, users); err != nil {
		return err
	}
	logg.Info(logg.WithFields(ctx, map[string]any{
		"stores":     len(snap.Stores),
		"vendors":    len(snap.Vendors),
		"deals":      len(snap.Deals),
		"test_users": len(users),
	}), "catalog.seeded")
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
