package customer

import "github.com/jhoicas/customer-registry/internal/domain"

// Mensajes que ve el usuario en el área de alertas.
const (
	MsgInvalidEmail       = "Invalid email address"
	MsgInvalidPhone       = "Invalid phone number"
	MsgInvalidBankAccount = "Invalid bank account number"
	MsgEmailExists        = "Email already exists"
	MsgCustomerExists     = "Customer with same name and date of birth already exists"

	MsgLoadFailed   = "Failed to load customers"
	MsgCreateFailed = "Failed to create customer"
	MsgUpdateFailed = "Failed to update customer"
	MsgDeleteFailed = "Failed to delete customer"
)

// StateError es lo que queda en la ranura de error del estado.
// Error() devuelve exactamente el mensaje para el usuario; Unwrap expone el tipo de dominio
// (domain.ErrInvalidInput, domain.ErrDuplicate, domain.ErrStorage) y la causa.
type StateError struct {
	Message string
	Kind    error
	Cause   error
}

func (e *StateError) Error() string { return e.Message }

func (e *StateError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func invalid(msg string) *StateError {
	return &StateError{Message: msg, Kind: domain.ErrInvalidInput}
}

func duplicate(msg string) *StateError {
	return &StateError{Message: msg, Kind: domain.ErrDuplicate}
}

func storageFailure(msg string, cause error) *StateError {
	return &StateError{Message: msg, Kind: domain.ErrStorage, Cause: cause}
}
