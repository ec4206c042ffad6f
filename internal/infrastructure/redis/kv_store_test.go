package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/customer-registry/internal/infrastructure/redis"
	"github.com/jhoicas/customer-registry/pkg/config"
)

const testPrefix = "test:"

func setupKVStore(t *testing.T) (*redis.KVStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redis.NewKVStore(client, testPrefix), mr
}

func TestKVStore_GetInexistenteDevuelveNil(t *testing.T) {
	store, _ := setupKVStore(t)

	got, err := store.Get(context.Background(), "customers")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestKVStore_SetGetUsaPrefijo(t *testing.T) {
	store, mr := setupKVStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "customers", []byte(`[{"id":"1"}]`)))

	got, err := store.Get(ctx, "customers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	raw, err := mr.Get(testPrefix + "customers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, raw)
	assert.Zero(t, mr.TTL(testPrefix+"customers"), "no debe expirar")
}

func TestKVStore_DeleteIdempotente(t *testing.T) {
	store, mr := setupKVStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "customers", []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, "customers"))
	require.NoError(t, store.Delete(ctx, "customers"))
	assert.False(t, mr.Exists(testPrefix+"customers"))
}

func TestKVStore_ErrorDelServidor(t *testing.T) {
	store, mr := setupKVStore(t)
	mr.SetError("ERR simulado")

	_, err := store.Get(context.Background(), "customers")
	assert.ErrorContains(t, err, "simulado")
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr() + "/0", PoolSize: 2})
	require.NoError(t, err)
	defer client.Close()

	_, err = redis.NewClient(context.Background(), config.RedisConfig{URL: "no-es-una-url"})
	assert.Error(t, err)
}
