package repository

import "github.com/mfigueredo/invoicepay/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice.
// Las operaciones con Scope aplican el predicado de ownership: si hay
// organización activa filtran por organization_id; si no, por user_id
// con organization_id IS NULL. Los reads devuelven (nil, nil) cuando no
// hay fila que coincida; la capa de aplicación lo traduce a ErrNotFound.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	ListByScope(scope entity.Scope) ([]*entity.InvoiceWithCustomer, error)
	GetByIDAndScope(id string, scope entity.Scope) (*entity.InvoiceWithCustomer, error)
	// UpdateStatus asigna el estado sin verificar filas afectadas:
	// un id fuera de scope o inexistente es un no-op silencioso.
	UpdateStatus(id string, scope entity.Scope, status string) error
	Delete(id string, scope entity.Scope) error
	// GetForPayment es deliberadamente sin scoping: lo consume el flujo
	// de pago donde el caller puede no tener sesión autenticada.
	GetForPayment(id string) (*entity.InvoiceForPayment, error)
	// UpdateStatusUnscoped lo usa el callback de pago verificado.
	UpdateStatusUnscoped(id string, status string) error
}
