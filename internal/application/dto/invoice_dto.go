package dto

import "time"

// CreateInvoiceRequest datos del formulario de nueva factura. Value llega
// como string decimal ("10.00") y se convierte a centavos con floor.
type CreateInvoiceRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// CustomerResponse cliente embebido en las respuestas de factura.
type CustomerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// InvoiceResponse factura con su cliente (join del listado y el detalle).
type InvoiceResponse struct {
	ID          string           `json:"id"`
	Value       int64            `json:"value"` // centavos
	Amount      string           `json:"amount"`
	Description string           `json:"description"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	Customer    CustomerResponse `json:"customer"`
}

// UpdateInvoiceStatusRequest nuevo estado para la factura.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceForPaymentResponse vista pública de la factura para la página
// de pago (sin scoping, sin datos del dueño).
type InvoiceForPaymentResponse struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	Description  string    `json:"description"`
	Value        int64     `json:"value"`
	Amount       string    `json:"amount"`
	CustomerName string    `json:"customer_name"`
}

// Estados del resultado del callback de pago.
const (
	PayStatePaid     = "paid"
	PayStateCanceled = "canceled"
	PayStateError    = "error"
)

// PaymentCallbackResponse resultado del retorno desde el checkout.
type PaymentCallbackResponse struct {
	State   string                     `json:"state"` // paid | canceled | error
	Invoice *InvoiceForPaymentResponse `json:"invoice,omitempty"`
}
