// Package customer orquesta el estado de la sesión de UI: la lista en memoria de clientes y
// el último error, sincronizados con el repositorio.
package customer

import (
	"context"
	"slices"
	"sync"

	rules "github.com/jhoicas/customer-registry/internal/domain/customer"
	"github.com/jhoicas/customer-registry/internal/domain/entity"
	"github.com/jhoicas/customer-registry/internal/domain/repository"
	"github.com/jhoicas/customer-registry/pkg/logger"
)

// State es la proyección en memoria de la colección persistida más la ranura de error.
// Todas las operaciones se serializan: una segunda operación espera a que termine la primera,
// así la lista nunca se lee a medio actualizar.
type State struct {
	mu        sync.Mutex
	repo      repository.CustomerRepository
	log       *logger.Logger
	customers []entity.Customer
	err       *StateError
}

// NewState construye el estado con el repositorio inyectado.
func NewState(repo repository.CustomerRepository, log *logger.Logger) *State {
	if log == nil {
		log = logger.Nop()
	}
	return &State{
		repo:      repo,
		log:       log.Component("customer_state"),
		customers: []entity.Customer{},
	}
}

// Validate aplica las reglas en orden fijo; gana la primera que falla:
// email → teléfono → cuenta bancaria → email único → nombre+fecha único.
func Validate(c entity.Customer, existing []entity.Customer) *StateError {
	switch {
	case !rules.IsValidEmail(c.Email):
		return invalid(MsgInvalidEmail)
	case !rules.IsValidPhoneNumber(c.PhoneNumber):
		return invalid(MsgInvalidPhone)
	case !rules.IsValidBankAccountNumber(c.BankAccountNumber):
		return invalid(MsgInvalidBankAccount)
	case !rules.IsUniqueEmail(c.Email, existing):
		return duplicate(MsgEmailExists)
	case !rules.IsUniqueCustomer(c, existing):
		return duplicate(MsgCustomerExists)
	}
	return nil
}

// Load reemplaza la lista con lo persistido. Si falla, la lista queda como estaba.
func (s *State) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.repo.GetAll(ctx)
	if err != nil {
		return s.fail(storageFailure(MsgLoadFailed, err))
	}
	if list == nil {
		list = []entity.Customer{}
	}
	s.customers = list
	s.err = nil
	s.log.Debug().Int("count", len(list)).Msg("clientes cargados")
	return nil
}

// Create valida contra la lista actual y, si pasa, persiste y agrega el resultado.
// Si la validación falla el repositorio no se llama.
func (s *State) Create(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if verr := Validate(c, s.customers); verr != nil {
		return nil, s.reject(verr)
	}

	created, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, s.fail(storageFailure(MsgCreateFailed, err))
	}
	s.customers = append(s.customers, *created)
	s.err = nil
	s.log.Info().Str("customer_id", created.ID).Msg("cliente creado")

	out := *created
	return &out, nil
}

// Update valida igual que Create; el propio registro no cuenta para la unicidad.
// Un ID inexistente se reporta con el mensaje genérico; domain.ErrNotFound queda como causa.
func (s *State) Update(ctx context.Context, id string, c entity.Customer) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	others := slices.DeleteFunc(slices.Clone(s.customers), func(e entity.Customer) bool { return e.ID == id })
	if verr := Validate(c, others); verr != nil {
		return nil, s.reject(verr)
	}

	updated, err := s.repo.Update(ctx, id, c)
	if err != nil {
		return nil, s.fail(storageFailure(MsgUpdateFailed, err))
	}
	if i := slices.IndexFunc(s.customers, func(e entity.Customer) bool { return e.ID == id }); i >= 0 {
		s.customers[i] = *updated
	}
	s.err = nil
	s.log.Info().Str("customer_id", id).Msg("cliente actualizado")

	out := *updated
	return &out, nil
}

// Delete borra en el repositorio y luego de la lista.
func (s *State) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.fail(storageFailure(MsgDeleteFailed, err))
	}
	s.customers = slices.DeleteFunc(s.customers, func(e entity.Customer) bool { return e.ID == id })
	s.err = nil
	s.log.Info().Str("customer_id", id).Msg("cliente eliminado")
	return nil
}

// Find consulta el repositorio sin tocar la lista ni la ranura de error.
// Devuelve (nil, nil) si no existe.
func (s *State) Find(ctx context.Context, id string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.GetByID(ctx, id)
}

// Customers devuelve una copia de la lista actual.
func (s *State) Customers() []entity.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.customers)
}

// Err devuelve el último error (*StateError) o nil.
func (s *State) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		return nil
	}
	return s.err
}

// ErrorMessage devuelve el mensaje del último error, o "" si no hay.
func (s *State) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		return ""
	}
	return s.err.Message
}

// Snapshot devuelve lista y mensaje de error leídos juntos.
func (s *State) Snapshot() ([]entity.Customer, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := ""
	if s.err != nil {
		msg = s.err.Message
	}
	return slices.Clone(s.customers), msg
}

func (s *State) reject(verr *StateError) error {
	s.err = verr
	s.log.Warn().Str("reason", verr.Message).Msg("cliente rechazado por validación")
	return verr
}

func (s *State) fail(fe *StateError) error {
	s.err = fe
	s.log.Error().Err(fe.Cause).Str("reason", fe.Message).Msg("fallo del repositorio")
	return fe
}
