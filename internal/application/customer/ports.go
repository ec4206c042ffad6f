package customer

import (
	"context"
	"time"

	"github.com/jhoicas/customer-registry/internal/domain/entity"
)

// ListPDFGenerator define el contrato del generador del listado de clientes en PDF.
// La implementación concreta (Maroto) vive en infrastructure/pdf.
type ListPDFGenerator interface {
	GenerateCustomerListPDF(ctx context.Context, customers []entity.Customer, generatedAt time.Time) ([]byte, error)
}
