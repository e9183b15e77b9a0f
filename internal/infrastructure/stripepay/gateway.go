// Package stripepay implementa el puerto billing.PaymentGateway sobre
// Stripe Checkout (sesiones hosteadas). El monto llega en unidades
// menores y se pasa como unit_amount sin reconversión.
package stripepay

import (
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"

	"github.com/mfigueredo/invoicepay/internal/application/billing"
)

var _ billing.PaymentGateway = (*CheckoutGateway)(nil)

// Config credenciales y parámetros fijos del gateway.
type Config struct {
	APIKey    string
	ProductID string // producto ya creado en Stripe
	Currency  string
}

// CheckoutGateway gateway de pagos sobre Stripe Checkout.
type CheckoutGateway struct {
	productID string
	currency  string
}

// NewCheckoutGateway construye el gateway y fija la API key global del
// cliente de Stripe.
func NewCheckoutGateway(cfg Config) *CheckoutGateway {
	stripe.Key = cfg.APIKey
	currency := cfg.Currency
	if currency == "" {
		currency = "usd"
	}
	return &CheckoutGateway{productID: cfg.ProductID, currency: currency}
}

// CreateSession crea una sesión de checkout de pago único por el monto
// de la factura.
func (g *CheckoutGateway) CreateSession(params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	in := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(g.currency),
					Product:    stripe.String(g.productID),
					UnitAmount: stripe.Int64(params.Amount),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(params.SuccessURL),
		CancelURL:  stripe.String(params.CancelURL),
	}
	s, err := session.New(in)
	if err != nil {
		return nil, fmt.Errorf("stripe: crear checkout session: %w", err)
	}
	return toSession(s), nil
}

// GetSession consulta una sesión existente; lo usa el callback para
// verificar que el pago realmente ocurrió antes de marcar la factura.
func (g *CheckoutGateway) GetSession(sessionID string) (*billing.CheckoutSession, error) {
	s, err := session.Get(sessionID, nil)
	if err != nil {
		return nil, fmt.Errorf("stripe: consultar checkout session: %w", err)
	}
	return toSession(s), nil
}

func toSession(s *stripe.CheckoutSession) *billing.CheckoutSession {
	return &billing.CheckoutSession{
		ID:   s.ID,
		URL:  s.URL,
		Paid: s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
	}
}
