package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mfigueredo/invoicepay/internal/domain"
)

// Estados posibles de una factura. No hay máquina de estados: cualquier
// estado puede asignarse vía actualización explícita; el flujo de pago
// solo produce la transición a StatusPaid.
const (
	StatusOpen          = "open"
	StatusPaid          = "paid"
	StatusVoid          = "void"
	StatusUncollectible = "uncollectible"
)

// ValidStatus verifica pertenencia a la enumeración cerrada de estados.
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusPaid, StatusVoid, StatusUncollectible:
		return true
	}
	return false
}

// Invoice representa la cabecera de una factura. Value se almacena como
// entero de unidades menores (centavos) para evitar flotantes en dinero.
type Invoice struct {
	ID             string
	CustomerID     string
	Value          int64 // centavos
	Description    string
	Status         string
	UserID         string
	OrganizationID string // vacío = registro personal (sin organización)
	CreatedAt      time.Time
}

// InvoiceWithCustomer es el resultado del join factura + cliente que
// consumen los listados y el detalle.
type InvoiceWithCustomer struct {
	Invoice  Invoice
	Customer Customer
}

// InvoiceForPayment es la vista reducida y sin scoping que consume el
// flujo de pago (el caller puede llegar desde el redirect del checkout
// sin sesión autenticada).
type InvoiceForPayment struct {
	ID           string
	Status       string
	CreatedAt    time.Time
	Description  string
	Value        int64
	CustomerName string
}

var hundred = decimal.NewFromInt(100)

// ParseMinorUnits convierte el string decimal del formulario ("12.345")
// a unidades menores con floor: floor(12.345 * 100) = 1234. Valores no
// numéricos o negativos devuelven ErrInvalidInput.
func ParseMinorUnits(value string) (int64, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, domain.ErrInvalidInput
	}
	if d.IsNegative() {
		return 0, domain.ErrInvalidInput
	}
	return d.Mul(hundred).Floor().IntPart(), nil
}

// FormatMinorUnits convierte centavos a su representación de moneda para
// mostrar: 1000 -> "$10", 1234 -> "$12.34".
func FormatMinorUnits(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Div(hundred).String()
}
