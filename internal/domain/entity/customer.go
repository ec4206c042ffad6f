package entity

// Customer es el único registro que maneja la aplicación.
// ID queda vacío hasta que el repositorio lo asigna en Create; desde ahí es inmutable.
// Las etiquetas JSON definen también el formato persistido en el almacén clave-valor.
type Customer struct {
	ID                string `json:"id,omitempty"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	DateOfBirth       string `json:"dateOfBirth"` // fecha de calendario como texto (YYYY-MM-DD)
	PhoneNumber       string `json:"phoneNumber"` // formato internacional, ej. +14155552671
	Email             string `json:"email"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

// FullName devuelve "Nombre Apellido" para listados y exportaciones.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
