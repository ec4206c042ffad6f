package repository

import "context"

// KeyValueStore es el medio de almacenamiento: valores opacos bajo una clave.
// Get devuelve (nil, nil) si la clave no existe; Delete es idempotente.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
