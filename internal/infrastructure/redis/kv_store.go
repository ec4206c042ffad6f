package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/customer-registry/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore guarda cada clave como un string de Redis bajo prefix+key, sin expiración.
type KVStore struct {
	client goredis.Cmdable
	prefix string
}

// NewKVStore construye el adaptador sobre un cliente (o cluster) ya conectado.
func NewKVStore(client goredis.Cmdable, prefix string) *KVStore {
	return &KVStore{client: client, prefix: prefix}
}

// Get devuelve (nil, nil) si la clave no existe.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Set reemplaza el valor completo.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete es idempotente (DEL de una clave ausente devuelve 0).
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
