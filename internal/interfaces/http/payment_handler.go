package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mfigueredo/invoicepay/internal/application/billing"
	"github.com/mfigueredo/invoicepay/internal/application/dto"
	"github.com/mfigueredo/invoicepay/internal/domain"
)

// PaymentHandler maneja el flujo de pago. Sus rutas son públicas: el
// caller puede llegar desde el redirect del checkout sin sesión.
type PaymentHandler struct {
	uc *billing.PaymentUseCase
	// baseURL pública para construir las URLs de retorno; vacío = se
	// toma del request.
	baseURL string
}

// NewPaymentHandler construye el handler.
func NewPaymentHandler(uc *billing.PaymentUseCase, baseURL string) *PaymentHandler {
	return &PaymentHandler{uc: uc, baseURL: baseURL}
}

// Show GET /api/invoices/:id/payment
// Vista pública de la factura para la página de pago.
func (h *PaymentHandler) Show(c *fiber.Ctx) error {
	invoice, err := h.uc.GetForPayment(c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		return internalError(c, err)
	}
	return c.JSON(invoice)
}

// Checkout POST /api/invoices/:id/payment
// Crea la sesión de checkout y redirige a la URL hosteada del proveedor.
func (h *PaymentHandler) Checkout(c *fiber.Ctx) error {
	base := h.baseURL
	if base == "" {
		base = c.BaseURL()
	}
	url, err := h.uc.CreateCheckout(c.Params("id"), base)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PAID", Message: "la factura ya está pagada"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: err.Error()})
	}
	return c.Redirect(url, fiber.StatusSeeOther)
}

// Callback GET /api/invoices/:id/payment/callback?status=&session_id=
// Retorno desde el checkout. La verificación del pago la hace el caso
// de uso contra el gateway; el query string por sí solo no muta nada.
func (h *PaymentHandler) Callback(c *fiber.Ctx) error {
	out, err := h.uc.HandleCallback(c.Params("id"), c.Query("status"), c.Query("session_id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return notFound(c)
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser success o canceled"})
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "GATEWAY", Message: err.Error()})
	}
	return c.JSON(out)
}
