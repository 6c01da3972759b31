package persistence

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/db"
	"github.com/angelmondragon/storefront/pkg/logger"
	"github.com/angelmondragon/storefront/pkg/migrate"
	"github.com/angelmondragon/storefront/pkg/redis"
)

// Open builds the storage backend selected by cfg.Storage.Driver. SQL backends are
// migrated before they are returned.
func Open(ctx context.Context, cfg *config.Config, logg *logger.Logger) (Backend, error) {
	driver := cfg.Storage.NormalizedDriver()
	switch driver {
	case config.StorageDriverMemory:
		return NewMemoryKV(), nil
	case config.StorageDriverFile:
		return NewFileKV(filepath.Join(cfg.Storage.Dir, cfg.Storage.Namespace))
	case config.StorageDriverRedis:
		return redis.New(ctx, cfg.Redis, cfg.Storage.Namespace, logg)
	case config.StorageDriverSQLite, config.StorageDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, cfg.Storage.Namespace, logg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := client.SQL()
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("extracting sql.DB: %w", err)
		}
		if err := migrate.Up(ctx, sqlDB, driver, migrate.NewGooseLogger(ctx, logg)); err != nil {
			client.Close()
			return nil, fmt.Errorf("running storage migrations: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}
