package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/customer-registry/internal/domain/repository"
)

// PDFUseCase genera el listado imprimible de clientes.
type PDFUseCase struct {
	repo      repository.CustomerRepository
	generator ListPDFGenerator
	now       func() time.Time
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(repo repository.CustomerRepository, generator ListPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator, now: time.Now}
}

// ExportList lee la colección persistida y devuelve (pdfBytes, filename, nil).
// El nombre de archivo lleva la fecha de generación: clientes_20260117.pdf.
func (uc *PDFUseCase) ExportList(ctx context.Context) (pdfBytes []byte, filename string, err error) {
	customers, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener clientes: %w", err)
	}

	at := uc.now()
	pdfBytes, err = uc.generator.GenerateCustomerListPDF(ctx, customers, at)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("clientes_%s.pdf", at.Format("20060102"))
	return pdfBytes, filename, nil
}
