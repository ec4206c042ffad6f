package customer_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/domain"
	"github.com/jhoicas/customer-registry/internal/domain/entity"
	"github.com/jhoicas/customer-registry/internal/infrastructure/kvstore"
	"github.com/jhoicas/customer-registry/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mock del repositorio
// ──────────────────────────────────────────────────────────────────────────────

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetAll(ctx context.Context) ([]entity.Customer, error) {
	ret := m.Called(ctx)
	var list []entity.Customer
	if ret.Get(0) != nil {
		list = ret.Get(0).([]entity.Customer)
	}
	return list, ret.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	ret := m.Called(ctx, id)
	var c *entity.Customer
	if ret.Get(0) != nil {
		c = ret.Get(0).(*entity.Customer)
	}
	return c, ret.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	ret := m.Called(ctx, c)
	var out *entity.Customer
	if ret.Get(0) != nil {
		out = ret.Get(0).(*entity.Customer)
	}
	return out, ret.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id string, c entity.Customer) (*entity.Customer, error) {
	ret := m.Called(ctx, id, c)
	var out *entity.Customer
	if ret.Get(0) != nil {
		out = ret.Get(0).(*entity.Customer)
	}
	return out, ret.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func validJohn() entity.Customer {
	return entity.Customer{
		FirstName:         "John",
		LastName:          "Doe",
		DateOfBirth:       "1990-05-15",
		PhoneNumber:       "+14155552671",
		Email:             "john@example.com",
		BankAccountNumber: "12345678",
	}
}

func withID(c entity.Customer, id string) *entity.Customer {
	c.ID = id
	return &c
}

// loadedState devuelve un estado cargado con la lista indicada.
func loadedState(t *testing.T, repo *mockRepo, list []entity.Customer) *appcustomer.State {
	t.Helper()
	repo.On("GetAll", mock.Anything).Return(list, nil).Once()
	s := appcustomer.NewState(repo, nil)
	require.NoError(t, s.Load(context.Background()))
	return s
}

// ──────────────────────────────────────────────────────────────────────────────
// Load
// ──────────────────────────────────────────────────────────────────────────────

func TestLoad_ReemplazaLista(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})

	customers, msg := s.Snapshot()
	assert.Len(t, customers, 1)
	assert.Empty(t, msg)
	repo.AssertExpectations(t)
}

func TestLoad_FalloConservaListaYMensajeGenerico(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})

	cause := errors.New("connection refused")
	repo.On("GetAll", mock.Anything).Return(nil, cause).Once()

	err := s.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, appcustomer.MsgLoadFailed, err.Error())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, s.Customers(), 1, "la lista previa se conserva")
	assert.Equal(t, appcustomer.MsgLoadFailed, s.ErrorMessage())
}

func TestNewState_ListaVaciaAntesDeCargar(t *testing.T) {
	s := appcustomer.NewState(new(mockRepo), nil)

	assert.NotNil(t, s.Customers())
	assert.Empty(t, s.Customers())
	assert.NoError(t, s.Err())
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: orden de validación
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_OrdenDeValidacion(t *testing.T) {
	existing := []entity.Customer{*withID(validJohn(), "1")}

	cases := []struct {
		name   string
		mutate func(*entity.Customer)
		msg    string
		kind   error
	}{
		{
			name: "email inválido gana sobre todo lo demás",
			mutate: func(c *entity.Customer) {
				c.Email = "invalid-email"
				c.PhoneNumber = "abc"
				c.BankAccountNumber = "1"
			},
			msg:  appcustomer.MsgInvalidEmail,
			kind: domain.ErrInvalidInput,
		},
		{
			name: "teléfono antes que cuenta",
			mutate: func(c *entity.Customer) {
				c.Email = "otro@example.com"
				c.PhoneNumber = "123"
				c.BankAccountNumber = "1"
			},
			msg:  appcustomer.MsgInvalidPhone,
			kind: domain.ErrInvalidInput,
		},
		{
			name: "cuenta bancaria antes que unicidad",
			mutate: func(c *entity.Customer) {
				c.BankAccountNumber = "1234"
			},
			msg:  appcustomer.MsgInvalidBankAccount,
			kind: domain.ErrInvalidInput,
		},
		{
			name: "email duplicado antes que nombre duplicado",
			mutate: func(c *entity.Customer) {
				c.Email = "JOHN@example.com"
			},
			msg:  appcustomer.MsgEmailExists,
			kind: domain.ErrDuplicate,
		},
		{
			name: "mismo nombre y fecha con otro email",
			mutate: func(c *entity.Customer) {
				c.Email = "john.doe@example.com"
				c.FirstName = "JOHN"
				c.LastName = "doe"
			},
			msg:  appcustomer.MsgCustomerExists,
			kind: domain.ErrDuplicate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(mockRepo)
			s := loadedState(t, repo, existing)

			in := validJohn()
			tc.mutate(&in)
			got, err := s.Create(context.Background(), in)

			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tc.msg, err.Error())
			assert.ErrorIs(t, err, tc.kind)
			assert.Equal(t, tc.msg, s.ErrorMessage())
			assert.Len(t, s.Customers(), 1)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreate_ExitoAgregaYLimpiaError(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, nil)

	// Un primer intento inválido deja el error puesto.
	bad := validJohn()
	bad.Email = "x"
	_, err := s.Create(context.Background(), bad)
	require.Error(t, err)
	require.NotEmpty(t, s.ErrorMessage())

	in := validJohn()
	repo.On("Create", mock.Anything, in).Return(withID(in, "abc"), nil).Once()

	created, err := s.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "abc", created.ID)
	assert.Empty(t, s.ErrorMessage())
	assert.NoError(t, s.Err())

	customers := s.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "abc", customers[0].ID)
	repo.AssertExpectations(t)
}

func TestCreate_FalloDelRepositorio(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded")).Once()

	_, err := s.Create(context.Background(), validJohn())
	require.Error(t, err)
	assert.Equal(t, appcustomer.MsgCreateFailed, err.Error())
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Empty(t, s.Customers())
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NoChocaConsigoMismo(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})

	changes := validJohn()
	changes.PhoneNumber = "+442071838750"
	repo.On("Update", mock.Anything, "1", changes).Return(withID(changes, "1"), nil).Once()

	updated, err := s.Update(context.Background(), "1", changes)
	require.NoError(t, err)
	assert.Equal(t, "+442071838750", updated.PhoneNumber)

	customers := s.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "+442071838750", customers[0].PhoneNumber)
	repo.AssertExpectations(t)
}

func TestUpdate_ChocaConOtroRegistro(t *testing.T) {
	other := validJohn()
	other.FirstName = "Jane"
	other.Email = "jane@example.com"
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1"), *withID(other, "2")})

	changes := validJohn()
	changes.Email = "jane@example.com"
	_, err := s.Update(context.Background(), "1", changes)

	require.Error(t, err)
	assert.Equal(t, appcustomer.MsgEmailExists, err.Error())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_InexistenteMensajeGenerico(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, nil)
	repo.On("Update", mock.Anything, "zzz", mock.Anything).
		Return(nil, errors.Join(errors.New("update customer zzz"), domain.ErrNotFound)).Once()

	_, err := s.Update(context.Background(), "zzz", validJohn())
	require.Error(t, err)
	assert.Equal(t, appcustomer.MsgUpdateFailed, err.Error())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Customers(), "no agrega registros que no estaban en la lista")
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete / Find
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_QuitaDeLaLista(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})
	repo.On("Delete", mock.Anything, "1").Return(nil).Once()

	require.NoError(t, s.Delete(context.Background(), "1"))
	assert.Empty(t, s.Customers())
}

func TestDelete_FalloConservaLista(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})
	repo.On("Delete", mock.Anything, "1").Return(errors.New("timeout")).Once()

	err := s.Delete(context.Background(), "1")
	require.Error(t, err)
	assert.Equal(t, appcustomer.MsgDeleteFailed, err.Error())
	assert.Len(t, s.Customers(), 1)
}

func TestFind_NoTocaLaRanuraDeError(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, nil)

	bad := validJohn()
	bad.Email = "x"
	_, _ = s.Create(context.Background(), bad)

	repo.On("GetByID", mock.Anything, "nope").Return(nil, nil).Once()
	got, err := s.Find(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, appcustomer.MsgInvalidEmail, s.ErrorMessage())
}

func TestCustomers_DevuelveCopia(t *testing.T) {
	repo := new(mockRepo)
	s := loadedState(t, repo, []entity.Customer{*withID(validJohn(), "1")})

	list := s.Customers()
	list[0].FirstName = "Mutado"
	assert.Equal(t, "John", s.Customers()[0].FirstName)
}

// ──────────────────────────────────────────────────────────────────────────────
// Integración con el repositorio sobre KV en memoria
// ──────────────────────────────────────────────────────────────────────────────

func TestState_FlujoCompletoSobreMemoria(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewCustomerRepository(kvstore.NewMemoryStore())
	s := appcustomer.NewState(repo, nil)
	require.NoError(t, s.Load(ctx))
	assert.Empty(t, s.Customers())

	created, err := s.Create(ctx, validJohn())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	dup := validJohn()
	dup.FirstName = "Other"
	_, err = s.Create(ctx, dup)
	require.Error(t, err)
	assert.Equal(t, "Email already exists", s.ErrorMessage())

	// Un estado nuevo sobre el mismo repositorio ve lo persistido.
	fresh := appcustomer.NewState(repo, nil)
	require.NoError(t, fresh.Load(ctx))
	require.Len(t, fresh.Customers(), 1)

	require.NoError(t, s.Delete(ctx, created.ID))
	assert.Empty(t, s.Customers())
	assert.Empty(t, s.ErrorMessage())

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestState_CreatesConcurrentesSerializados(t *testing.T) {
	ctx := context.Background()
	s := appcustomer.NewState(storage.NewCustomerRepository(kvstore.NewMemoryStore()), nil)
	require.NoError(t, s.Load(ctx))

	// Mismo cliente diez veces: sólo uno puede pasar la unicidad.
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Create(ctx, validJohn()); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Len(t, s.Customers(), 1)
}
