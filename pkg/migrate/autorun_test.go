package migrate

import (
	"context"
	"testing"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/config"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/db"
	"github.com/angelmondragon/hra-tradeshow-backend/pkg/logger"
)

type autoMigrateRow struct {
	ID   string `gorm:"primaryKey"`
	Name string
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvProd
	cfg.Migrate.AutoMigrate = true

	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), nil); err != nil {
		t.Fatalf("expected prod to skip, got %v", err)
	}

	cfg.App.Env = config.AppEnvDev
	cfg.Migrate.AutoMigrate = false
	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), nil); err != nil {
		t.Fatalf("expected disabled automigrate to skip, got %v", err)
	}
}

func TestMaybeRunDevSQLiteAutoMigrates(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.Migrate.AutoMigrate = true
	cfg.DB = config.DBConfig{Driver: config.DBDriverSQLite, DSN: "file:autorun?mode=memory&cache=shared"}

	client, err := db.New(context.Background(), cfg.DB, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer client.Close()

	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), client, &autoMigrateRow{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if !client.DB().Migrator().HasTable(&autoMigrateRow{}) {
		t.Fatal("expected table to be created")
	}
}

func TestMaybeRunDevRequiresClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Env = config.AppEnvDev
	cfg.Migrate.AutoMigrate = true
	if err := MaybeRunDev(context.Background(), cfg, logger.Nop(), nil); err == nil {
		t.Fatal("expected error without a db client")
	}
}
