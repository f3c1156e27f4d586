package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/hra-tradeshow-backend/pkg/migrate"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %s", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestMigrationsDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestCatalogMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_catalog_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS stores",
		"CREATE TABLE IF NOT EXISTS store_groups",
		"child_store_ids TEXT[] NOT NULL",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_store_groups_parent",
		"CHECK (NOT (parent_store_id = ANY (child_store_ids)))",
		"FOREIGN KEY (vendor_id) REFERENCES vendors(id) ON DELETE CASCADE",
		"CHECK (min_quantity >= 1)",
		"CREATE TABLE IF NOT EXISTS test_users",
		"DROP TABLE IF EXISTS stores",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestSeedMigrationCoversCatalog(t *testing.T) {
	content := readMigration(t, "*_seed_trade_show_catalog.sql")

	for _, id := range []string{"HRA101", "HRA106", "G001", "G002", "V001", "V004", "'5'", "ADMIN001"} {
		if !strings.Contains(content, id) {
			t.Errorf("seed missing %s", id)
		}
	}
	if strings.Count(content, "ON CONFLICT (id) DO NOTHING") != 5 {
		t.Errorf("expected every seed insert to be idempotent")
	}
}
