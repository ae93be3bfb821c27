package migrate

import (
	"context"
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
)

func TestEmbeddedMigrationsAreValid(t *testing.T) {
	if err := ValidateFS(migrationsFS, embeddedDir); err != nil {
		t.Fatalf("embedded migrations invalid: %v", err)
	}
}

func TestProductsMigrationContainsSchema(t *testing.T) {
	data, err := migrationsFS.ReadFile("migrations/20260301120000_create_products_table.sql")
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"price      NUMERIC(12,2) NOT NULL CHECK (price >= 0)",
		"CREATE INDEX IF NOT EXISTS idx_products_position",
		"DROP TABLE IF EXISTS products",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateFSRejectsBadFiles(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"bad name": {
			"m/create_products.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
		"missing down": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n")},
		},
		"down before up": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Down\n-- +goose Up\n")},
		},
		"unbalanced statements": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose StatementBegin\n-- +goose Down\n")},
		},
		"duplicate version": {
			"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
			"m/20260101000000_b.sql": {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		},
	}
	for name, fsys := range cases {
		if err := ValidateFS(fsys, "m"); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestValidateFSReportsEveryProblem(t *testing.T) {
	fsys := fstest.MapFS{
		"m/bad.sql":              {Data: []byte("-- +goose Up\n-- +goose Down\n")},
		"m/20260101000000_a.sql": {Data: []byte("-- +goose Up\n")},
	}
	err := ValidateFS(fsys, "m")
	if err == nil {
		t.Fatal("expected validation errors")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected 2 problems, got %d: %v", got, err)
	}
}

func TestRunUpAndDownOnSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          "file:migrate_run?mode=memory&cache=shared",
		MaxOpenConns: 1,
	}
	client, err := db.New(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.SQL()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}

	if err := Run(ctx, sqlDB, db.Dialect(cfg), "up"); err != nil {
		t.Fatalf("goose up: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, `INSERT INTO products (id, position, name, price) VALUES ('1', 0, 'Tee', 1500)`); err != nil {
		t.Fatalf("insert after up: %v", err)
	}

	if err := Run(ctx, sqlDB, db.Dialect(cfg), "down"); err != nil {
		t.Fatalf("goose down: %v", err)
	}
	if _, err := sqlDB.ExecContext(ctx, `SELECT 1 FROM products`); err == nil {
		t.Fatal("expected products table to be dropped")
	}
}

func TestRunRequiresDB(t *testing.T) {
	if err := Run(context.Background(), nil, "postgres", "up"); err == nil {
		t.Fatal("expected error without db")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Product Tags")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_product_tags.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created migration: %v", err)
	}
	if !strings.Contains(string(data), "-- +goose Up") || !strings.Contains(string(data), "-- +goose Down") {
		t.Fatalf("created migration missing goose annotations:\n%s", data)
	}
	if err := ValidateFS(os.DirFS(dir), "."); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}

	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected error for name that sanitizes to empty")
	}
}
