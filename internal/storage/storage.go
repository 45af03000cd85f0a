package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/extra/bundebug"
	"github.com/uptrace/bun/schema"

	"github.com/goliatone/go-faqs/internal/logging"
	"github.com/goliatone/go-faqs/internal/runtimeconfig"
	"github.com/goliatone/go-faqs/pkg/interfaces"
)

// ErrDialectUnsupported is returned for dialects without a registered driver.
var ErrDialectUnsupported = errors.New("storage: unsupported dialect")

// Index describes a secondary index created during migration.
type Index struct {
	Name    string
	Model   any
	Columns []string
}

// Open connects to the configured database and wraps it with the matching
// bun dialect.
func Open(ctx context.Context, cfg runtimeconfig.StorageConfig, logger interfaces.Logger) (*bun.DB, error) {
	logger = logging.Ensure(logger)

	driver, dialect, err := resolveDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("storage: ping %s: %w", driver, err)
	}

	db := bun.NewDB(sqlDB, dialect)
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if cfg.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	logger.Info("storage.open", "driver", driver)
	return db, nil
}

// Migrate creates the tables and indexes for models when they do not exist.
func Migrate(ctx context.Context, db bun.IDB, models []any, indexes []Index) error {
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	for _, idx := range indexes {
		if _, err := db.NewCreateIndex().Model(idx.Model).Index(idx.Name).Column(idx.Columns...).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create index %s: %w", idx.Name, err)
		}
	}
	return nil
}

func resolveDialect(name string) (string, schema.Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", runtimeconfig.DialectSQLite:
		return "sqlite3", sqlitedialect.New(), nil
	case runtimeconfig.DialectPostgres:
		return "postgres", pgdialect.New(), nil
	default:
		return "", nil, fmt.Errorf("%w: %s", ErrDialectUnsupported, name)
	}
}
