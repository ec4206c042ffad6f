// Package pdf implementa el listado imprimible de clientes.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + total de clientes  │  Fecha de generación │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nombre | Nacimiento | Teléfono | Email | Cuenta      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda de cuentas enmascaradas                     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 235, Green: 241, Blue: 247}
)

// visibleAccountDigits es cuántos dígitos finales de la cuenta se imprimen.
const visibleAccountDigits = 4

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appcustomer.ListPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa customer.ListPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	author string
}

// NewMarotoPDFGenerator construye el generador; author va a los metadatos del documento.
func NewMarotoPDFGenerator(author string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{author: author}
}

// GenerateCustomerListPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCustomerListPDF(
	ctx context.Context,
	customers []entity.Customer,
	generatedAt time.Time,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Listado de clientes", true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(customers), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(customers)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(total int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("LISTADO DE CLIENTES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Total: %d", total), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1,
		}))
	}
	return row.New(8).Add(
		h("Nombre", 3),
		h("Nacimiento", 2),
		h("Teléfono", 2),
		h("Email", 3),
		h("Cuenta", 2),
	)
}

// tableRows: una fila por cliente, en el orden de la colección, con filas alternas sombreadas.
func tableRows(customers []entity.Customer) []core.Row {
	if len(customers) == 0 {
		return []core.Row{row.New(10).Add(col.New(12).Add(
			text.New("Sin clientes registrados", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		))}
	}

	cell := func(s string, size int) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Top: 1.5, Left: 1}))
	}

	result := make([]core.Row, 0, len(customers))
	for i, c := range customers {
		r := row.New(7).Add(
			cell(c.FullName(), 3),
			cell(c.DateOfBirth, 2),
			cell(c.PhoneNumber, 2),
			cell(c.Email, 3),
			cell(MaskAccount(c.BankAccountNumber), 2),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, r)
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			fmt.Sprintf("Por seguridad solo se muestran los últimos %d dígitos de cada cuenta bancaria.", visibleAccountDigits),
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// MaskAccount reemplaza por '*' todo salvo los últimos cuatro caracteres.
// Ej: "12345678" → "****5678". Cuentas de cuatro o menos se enmascaran completas.
func MaskAccount(account string) string {
	n := len(account)
	if n <= visibleAccountDigits {
		return strings.Repeat("*", n)
	}
	return strings.Repeat("*", n-visibleAccountDigits) + account[n-visibleAccountDigits:]
}
