// Package customer contiene las reglas de dominio del registro de clientes: validadores de
// formato por campo y chequeos de unicidad contra la colección existente.
// Son funciones puras; no tocan almacenamiento ni estado.
package customer

import (
	"regexp"

	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/customer-registry/internal/domain/entity"
)

// Longitudes admitidas para el número de cuenta bancaria.
const (
	MinBankAccountDigits = 8
	MaxBankAccountDigits = 17
)

// emailPart es un carácter admitido en cada tramo del email.
const emailPart = `[^\t\n\v\f\r \p{Z}\x{FEFF}@]`

// noDefaultRegion obliga a que el teléfono traiga el prefijo +<código de país>.
const noDefaultRegion = "ZZ"

var (
	// local@dominio.tld, sin blancos ni arrobas extra. Blancos: \s de RE2 más \v,
	// separadores Unicode (\p{Z}) y U+FEFF.
	emailPattern       = regexp.MustCompile(`^` + emailPart + `+@` + emailPart + `+\.` + emailPart + `+$`)
	bankAccountPattern = regexp.MustCompile(`^[0-9]{8,17}$`)
)

// IsValidEmail es una guarda de UI, no una validación RFC 5322.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// IsValidPhoneNumber valida con las reglas del plan internacional de numeración (libphonenumber).
func IsValidPhoneNumber(phoneNumber string) bool {
	num, err := phonenumbers.Parse(phoneNumber, noDefaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}

// IsValidBankAccountNumber exige solo dígitos ASCII y entre 8 y 17 caracteres.
func IsValidBankAccountNumber(accountNumber string) bool {
	return bankAccountPattern.MatchString(accountNumber)
}

// IsUniqueCustomer es false si algún existente coincide en nombre y apellido (sin distinguir
// mayúsculas) y en fecha de nacimiento (texto exacto).
func IsUniqueCustomer(candidate entity.Customer, existing []entity.Customer) bool {
	first := fold(candidate.FirstName)
	last := fold(candidate.LastName)
	for _, c := range existing {
		if c.DateOfBirth == candidate.DateOfBirth &&
			fold(c.FirstName) == first &&
			fold(c.LastName) == last {
			return false
		}
	}
	return true
}

// IsUniqueEmail es false si algún existente tiene el mismo email sin distinguir mayúsculas.
func IsUniqueEmail(email string, existing []entity.Customer) bool {
	want := fold(email)
	for _, c := range existing {
		if fold(c.Email) == want {
			return false
		}
	}
	return true
}

// fold pasa a minúsculas sin reglas de idioma. No es case folding completo: "ß" no se
// convierte en "ss". cases.Caser guarda estado, por eso se crea uno por llamada.
func fold(s string) string {
	return cases.Lower(language.Und).String(s)
}
