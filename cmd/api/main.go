package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mfigueredo/invoicepay/internal/application/auth"
	"github.com/mfigueredo/invoicepay/internal/application/billing"
	infrapdf "github.com/mfigueredo/invoicepay/internal/infrastructure/pdf"
	"github.com/mfigueredo/invoicepay/internal/infrastructure/postgres"
	"github.com/mfigueredo/invoicepay/internal/infrastructure/stripepay"
	httpRouter "github.com/mfigueredo/invoicepay/internal/interfaces/http"
	"github.com/mfigueredo/invoicepay/pkg/config"
	"github.com/mfigueredo/invoicepay/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gateway := stripepay.NewCheckoutGateway(stripepay.Config{
		APIKey:    cfg.Stripe.APIKey,
		ProductID: cfg.Stripe.ProductID,
		Currency:  cfg.Stripe.Currency,
	})
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo)
	paymentUC := billing.NewPaymentUseCase(invoiceRepo, gateway)
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, pdfGenerator)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "InvoicePay API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		InvoiceUC:  invoiceUC,
		PaymentUC:  paymentUC,
		InvoicePDF: invoicePDFUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		BaseURL:    cfg.App.BaseURL,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
