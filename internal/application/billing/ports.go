package billing

import (
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

// BillingTxRunner ejecuta fn con repos atados a una misma transacción:
// la creación de factura inserta cliente y factura como unidad atómica.
type BillingTxRunner interface {
	RunBilling(fn func(
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// CheckoutParams parámetros para crear una sesión de checkout hosteada.
// Amount ya viene en unidades menores y se pasa al gateway sin reconvertir.
type CheckoutParams struct {
	InvoiceID  string
	Amount     int64
	SuccessURL string
	CancelURL  string
}

// CheckoutSession sesión devuelta por el gateway de pagos. Paid refleja
// el estado de pago que reporta el propio gateway, no el query string
// del redirect.
type CheckoutSession struct {
	ID   string
	URL  string
	Paid bool
}

// PaymentGateway puerto hacia el proveedor de checkout externo.
type PaymentGateway interface {
	CreateSession(params CheckoutParams) (*CheckoutSession, error)
	GetSession(sessionID string) (*CheckoutSession, error)
}

// InvoicePDFGenerator puerto para la representación PDF de la factura.
type InvoicePDFGenerator interface {
	Render(inv *entity.InvoiceWithCustomer) ([]byte, error)
}
