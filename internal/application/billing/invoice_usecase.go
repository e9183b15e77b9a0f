package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/mfigueredo/invoicepay/internal/application/dto"
	"github.com/mfigueredo/invoicepay/internal/domain"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

// InvoiceUseCase operaciones de facturas con scoping por caller.
// Toda operación exige identidad resuelta: un scope sin UserID devuelve
// ErrUnauthorized en lugar de un retorno vacío silencioso.
type InvoiceUseCase struct {
	tx          BillingTxRunner
	invoiceRepo repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(tx BillingTxRunner, invoiceRepo repository.InvoiceRepository) *InvoiceUseCase {
	return &InvoiceUseCase{tx: tx, invoiceRepo: invoiceRepo}
}

// Create crea cliente y factura en una sola transacción. La factura nace
// con estado open y el valor convertido a centavos con floor.
func (uc *InvoiceUseCase) Create(scope entity.Scope, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if !scope.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	value, err := entity.ParseMinorUnits(in.Value)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Email:          in.Email,
		UserID:         scope.UserID,
		OrganizationID: scope.OrganizationID,
		CreatedAt:      now,
	}
	invoice := &entity.Invoice{
		ID:             uuid.New().String(),
		CustomerID:     customer.ID,
		Value:          value,
		Description:    in.Description,
		Status:         entity.StatusOpen,
		UserID:         scope.UserID,
		OrganizationID: scope.OrganizationID,
		CreatedAt:      now,
	}
	err = uc.tx.RunBilling(func(customerRepo repository.CustomerRepository, invoiceRepo repository.InvoiceRepository) error {
		if err := customerRepo.Create(customer); err != nil {
			return err
		}
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(&entity.InvoiceWithCustomer{Invoice: *invoice, Customer: *customer}), nil
}

// List devuelve las facturas del scope con su cliente.
func (uc *InvoiceUseCase) List(scope entity.Scope) ([]*dto.InvoiceResponse, error) {
	if !scope.Authenticated() {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.invoiceRepo.ListByScope(scope)
	if err != nil {
		return nil, err
	}
	// Guarda defensiva: el join con cero filas devuelve slice vacío, nunca nil.
	if list == nil {
		return nil, domain.ErrNotFound
	}
	out := make([]*dto.InvoiceResponse, 0, len(list))
	for _, row := range list {
		out = append(out, toInvoiceResponse(row))
	}
	return out, nil
}

// Get devuelve una factura del scope. Un id inexistente y un id de otro
// scope producen el mismo ErrNotFound (sin fuga de información).
func (uc *InvoiceUseCase) Get(scope entity.Scope, id string) (*dto.InvoiceResponse, error) {
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
	return toInvoiceResponse(row), nil
}

// UpdateStatus asigna el estado sin restricción de transición. Un id que
// no coincide en el scope es un no-op silencioso.
func (uc *InvoiceUseCase) UpdateStatus(scope entity.Scope, id, status string) error {
	if !scope.Authenticated() {
		return domain.ErrUnauthorized
	}
	if !entity.ValidStatus(status) {
		return domain.ErrInvalidInput
	}
	return uc.invoiceRepo.UpdateStatus(id, scope, status)
}

// Delete elimina la factura del scope; id inexistente o ajeno es no-op.
func (uc *InvoiceUseCase) Delete(scope entity.Scope, id string) error {
	if !scope.Authenticated() {
		return domain.ErrUnauthorized
	}
	return uc.invoiceRepo.Delete(id, scope)
}

func toInvoiceResponse(row *entity.InvoiceWithCustomer) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:          row.Invoice.ID,
		Value:       row.Invoice.Value,
		Amount:      entity.FormatMinorUnits(row.Invoice.Value),
		Description: row.Invoice.Description,
		Status:      row.Invoice.Status,
		CreatedAt:   row.Invoice.CreatedAt,
		Customer: dto.CustomerResponse{
			ID:    row.Customer.ID,
			Name:  row.Customer.Name,
			Email: row.Customer.Email,
		},
	}
}
