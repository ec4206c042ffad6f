// Package storage implementa el repositorio de clientes sobre un almacén clave-valor:
// toda la colección vive serializada como un arreglo JSON bajo una sola clave.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/customer-registry/internal/domain"
	"github.com/jhoicas/customer-registry/internal/domain/entity"
	"github.com/jhoicas/customer-registry/internal/domain/repository"
)

// DefaultKey es la clave donde se guarda la colección.
const DefaultKey = "customers"

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo lee y reescribe la colección completa en cada mutación.
// mu serializa los ciclos leer-modificar-escribir de esta instancia.
type CustomerRepo struct {
	mu    sync.Mutex
	kv    repository.KeyValueStore
	key   string
	newID func() string
}

// Option ajusta el repositorio al construirlo.
type Option func(*CustomerRepo)

// WithKey cambia la clave de almacenamiento.
func WithKey(key string) Option {
	return func(r *CustomerRepo) { r.key = key }
}

// WithIDGenerator reemplaza la generación de IDs (tests).
func WithIDGenerator(fn func() string) Option {
	return func(r *CustomerRepo) { r.newID = fn }
}

// NewCustomerRepository construye el repositorio sobre el medio indicado.
func NewCustomerRepository(kv repository.KeyValueStore, opts ...Option) *CustomerRepo {
	r := &CustomerRepo{kv: kv, key: DefaultKey, newID: uuid.NewString}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *CustomerRepo) load(ctx context.Context) ([]entity.Customer, error) {
	raw, err := r.kv.Get(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: leer colección: %w", domain.ErrStorage, err)
	}
	customers := []entity.Customer{}
	if len(raw) == 0 {
		return customers, nil
	}
	if err := json.Unmarshal(raw, &customers); err != nil {
		return nil, fmt.Errorf("%w: colección corrupta en %q: %w", domain.ErrStorage, r.key, err)
	}
	if customers == nil {
		// "null" persistido
		customers = []entity.Customer{}
	}
	return customers, nil
}

func (r *CustomerRepo) save(ctx context.Context, customers []entity.Customer) error {
	raw, err := json.Marshal(customers)
	if err != nil {
		return fmt.Errorf("serializar colección: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("%w: guardar colección: %w", domain.ErrStorage, err)
	}
	return nil
}

// GetAll devuelve la colección en orden de inserción.
func (r *CustomerRepo) GetAll(ctx context.Context) ([]entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// GetByID devuelve (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(customers, id)
	if i < 0 {
		return nil, nil
	}
	c := customers[i]
	return &c, nil
}

// Create ignora cualquier ID de entrada y asigna uno nuevo.
func (r *CustomerRepo) Create(ctx context.Context, customer entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	customer.ID = r.newID()
	for indexOf(customers, customer.ID) >= 0 {
		customer.ID = r.newID()
	}
	if err := r.save(ctx, append(customers, customer)); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Update reemplaza todos los campos salvo el ID, que se fuerza al de la ruta.
func (r *CustomerRepo) Update(ctx context.Context, id string, customer entity.Customer) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(customers, id)
	if i < 0 {
		return nil, fmt.Errorf("update customer %s: %w", id, domain.ErrNotFound)
	}
	customer.ID = id
	customers[i] = customer
	if err := r.save(ctx, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}

// Delete no falla si el ID no existe; en ese caso no reescribe nada.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	customers, err := r.load(ctx)
	if err != nil {
		return err
	}
	filtered := slices.DeleteFunc(customers, func(c entity.Customer) bool { return c.ID == id })
	if len(filtered) == len(customers) {
		return nil
	}
	return r.save(ctx, filtered)
}

func indexOf(customers []entity.Customer, id string) int {
	return slices.IndexFunc(customers, func(c entity.Customer) bool { return c.ID == id })
}
