package billing

import (
	"github.com/mfigueredo/invoicepay/internal/domain"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

// PDFUseCase genera la representación PDF de una factura del scope.
type PDFUseCase struct {
	invoiceRepo repository.InvoiceRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(invoiceRepo repository.InvoiceRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, generator: generator}
}

// Render devuelve los bytes del PDF. Aplica el mismo scoping que el
// detalle: una factura ajena es ErrNotFound.
func (uc *PDFUseCase) Render(scope entity.Scope, id string) ([]byte, error) {
	if !scope.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	row, err := uc.invoiceRepo.GetByIDAndScope(id, scope)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return uc.generator.Render(row)
}
