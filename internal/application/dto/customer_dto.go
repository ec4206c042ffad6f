package dto

import "github.com/jhoicas/customer-registry/internal/domain/entity"

// CustomerRequest body para POST /api/customers y PUT /api/customers/:id.
// El ID nunca viene del cuerpo: lo asigna el repositorio o la ruta.
type CustomerRequest struct {
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	DateOfBirth       string `json:"dateOfBirth"`
	PhoneNumber       string `json:"phoneNumber"`
	Email             string `json:"email"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

// ToEntity convierte el request en entidad sin ID.
func (r CustomerRequest) ToEntity() entity.Customer {
	return entity.Customer{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		DateOfBirth:       r.DateOfBirth,
		PhoneNumber:       r.PhoneNumber,
		Email:             r.Email,
		BankAccountNumber: r.BankAccountNumber,
	}
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	DateOfBirth       string `json:"dateOfBirth"`
	PhoneNumber       string `json:"phoneNumber"`
	Email             string `json:"email"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

// NewCustomerResponse mapea la entidad al cuerpo de respuesta.
func NewCustomerResponse(c entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:                c.ID,
		FirstName:         c.FirstName,
		LastName:          c.LastName,
		DateOfBirth:       c.DateOfBirth,
		PhoneNumber:       c.PhoneNumber,
		Email:             c.Email,
		BankAccountNumber: c.BankAccountNumber,
	}
}

// StateResponse lo que la UI necesita para pintarse: la lista y el texto del área de alertas.
type StateResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Error     string             `json:"error"`
}

// NewStateResponse arma la respuesta a partir de un snapshot del estado.
func NewStateResponse(customers []entity.Customer, errMsg string) StateResponse {
	out := StateResponse{Customers: make([]CustomerResponse, 0, len(customers)), Error: errMsg}
	for _, c := range customers {
		out.Customers = append(out.Customers, NewCustomerResponse(c))
	}
	return out
}
