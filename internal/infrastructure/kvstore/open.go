package kvstore

import (
	"context"
	"fmt"

	"github.com/jhoicas/customer-registry/internal/domain/repository"
	"github.com/jhoicas/customer-registry/internal/infrastructure/postgres"
	"github.com/jhoicas/customer-registry/internal/infrastructure/redis"
	"github.com/jhoicas/customer-registry/pkg/config"
)

// Open construye el medio indicado por STORAGE_DRIVER. La función devuelta libera conexiones y
// siempre es seguro llamarla.
func Open(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		return NewMemoryStore(), noop, nil

	case config.StorageFile:
		fs, err := NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, noop, err
		}
		return fs, noop, nil

	case config.StorageRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		return redis.NewKVStore(client, cfg.Redis.KeyPrefix), func() { _ = client.Close() }, nil

	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, err
		}
		kv := postgres.NewKVStore(pool)
		if err := kv.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return kv, pool.Close, nil
	}

	return nil, noop, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.Storage.Driver)
}
