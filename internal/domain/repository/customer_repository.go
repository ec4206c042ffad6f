package repository

import (
	"context"

	"github.com/jhoicas/customer-registry/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	// GetAll devuelve la colección completa en orden de inserción (vacía, nunca nil).
	GetAll(ctx context.Context) ([]entity.Customer, error)
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	// Create asigna un ID nuevo y devuelve el registro guardado.
	Create(ctx context.Context, customer entity.Customer) (*entity.Customer, error)
	// Update devuelve domain.ErrNotFound si el ID no existe.
	Update(ctx context.Context, id string, customer entity.Customer) (*entity.Customer, error)
	// Delete es idempotente.
	Delete(ctx context.Context, id string) error
}
