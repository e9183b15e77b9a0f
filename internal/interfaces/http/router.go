package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mfigueredo/invoicepay/internal/application/auth"
	"github.com/mfigueredo/invoicepay/internal/application/billing"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InvoiceUC  *billing.InvoiceUseCase
	PaymentUC  *billing.PaymentUseCase
	InvoicePDF *billing.PDFUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	BaseURL    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Flujo de pago (público: el caller llega desde el redirect del
	// checkout, posiblemente sin sesión). Registrado antes del grupo
	// protegido para quedar fuera del middleware de auth.
	paymentHandler := NewPaymentHandler(deps.PaymentUC, deps.BaseURL)
	api.Get("/invoices/:id/payment", paymentHandler.Show)
	api.Post("/invoices/:id/payment", paymentHandler.Checkout)
	api.Get("/invoices/:id/payment/callback", paymentHandler.Callback)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDF)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)
}
