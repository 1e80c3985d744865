package kv

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cairogo-gateway/internal/config"
	"github.com/cairogo-gateway/internal/domain/repository"
)

// Purger is implemented by stores that need explicit removal of expired keys.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// Open returns the store selected by STORAGE_DRIVER.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.KVStore, error) {
	switch cfg.Storage.Driver {
	case "redis":
		return NewRedis(&cfg.Redis, logger)
	case "badger":
		return NewBadger(cfg.Storage.Path, logger)
	case "postgres":
		if cfg.Storage.DSN == "" {
			return nil, fmt.Errorf("STORAGE_DSN is required for the postgres driver")
		}
		return NewPostgres(ctx, cfg.Storage.DSN, logger)
	case "sqlite":
		path := cfg.Storage.Path
		if path == "" {
			path = "cairogo.db"
		}
		return NewSQLite(ctx, path, logger)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
