package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/at-ishikawa/keepsake/internal/config"
	"github.com/at-ishikawa/keepsake/internal/database"
)

const pingTimeout = 5 * time.Second

// Open returns the store selected by cfg.Driver and a func that releases it.
func Open(ctx context.Context, cfg config.StorageConfig, dbCfg config.DatabaseConfig) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case "", "file":
		store, err := NewFileStore(cfg.Directory)
		if err != nil {
			return nil, nil, fmt.Errorf("NewFileStore() > %w", err)
		}
		return store, noop, nil
	case "memory":
		return NewMemoryStore(), noop, nil
	case "mysql":
		db, err := database.Open(dbCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database.Open() > %w", err)
		}
		if err := database.Ping(ctx, db, pingTimeout); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("database.Ping() > %w", err)
		}
		store := NewMySQLStore(db)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("store.Migrate() > %w", err)
		}
		return store, db.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
