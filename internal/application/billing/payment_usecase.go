package billing

import (
	"fmt"

	"github.com/mfigueredo/invoicepay/internal/application/dto"
	"github.com/mfigueredo/invoicepay/internal/domain"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

// Parámetros de query con los que el checkout redirige de vuelta.
const (
	CallbackStatusSuccess  = "success"
	CallbackStatusCanceled = "canceled"
)

// PaymentUseCase flujo de pago: lectura pública de la factura, creación
// de la sesión de checkout y manejo del retorno desde el proveedor.
//
// El retorno no se toma por cierto: antes de marcar la factura como
// pagada se consulta la sesión directamente al gateway y solo un estado
// de pago confirmado por él produce la mutación.
type PaymentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	gateway     PaymentGateway
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(invoiceRepo repository.InvoiceRepository, gateway PaymentGateway) *PaymentUseCase {
	return &PaymentUseCase{invoiceRepo: invoiceRepo, gateway: gateway}
}

// GetForPayment lectura sin scoping para la página de pago.
func (uc *PaymentUseCase) GetForPayment(id string) (*dto.InvoiceForPaymentResponse, error) {
	inv, err := uc.invoiceRepo.GetForPayment(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(inv), nil
}

// CreateCheckout crea la sesión de checkout para el valor almacenado
// (ya en centavos, sin reconversión) y devuelve la URL de redirección.
// Una factura ya pagada no admite un nuevo checkout.
func (uc *PaymentUseCase) CreateCheckout(id, baseURL string) (string, error) {
	inv, err := uc.invoiceRepo.GetForPayment(id)
	if err != nil {
		return "", err
	}
	if inv == nil {
		return "", domain.ErrNotFound
	}
	if inv.Status == entity.StatusPaid {
		return "", domain.ErrConflict
	}
	callback := fmt.Sprintf("%s/api/invoices/%s/payment/callback", baseURL, id)
	session, err := uc.gateway.CreateSession(CheckoutParams{
		InvoiceID: id,
		Amount:    inv.Value,
		// {CHECKOUT_SESSION_ID} es el token de plantilla que el proveedor
		// sustituye por el id real de la sesión al redirigir.
		SuccessURL: callback + "?status=success&session_id={CHECKOUT_SESSION_ID}",
		CancelURL:  callback + "?status=canceled&session_id={CHECKOUT_SESSION_ID}",
	})
	if err != nil {
		return "", fmt.Errorf("crear sesión de checkout: %w", err)
	}
	if session == nil || session.URL == "" {
		return "", fmt.Errorf("el gateway no devolvió URL de checkout")
	}
	return session.URL, nil
}

// HandleCallback procesa el retorno desde el checkout.
//
//   - success con session_id: se verifica la sesión contra el gateway y
//     solo si este la reporta pagada la factura pasa a paid (asignación
//     idempotente; repetir el callback la deja igual).
//   - success sin session_id: estado de error, sin mutación.
//   - canceled: aviso al caller, sin mutación.
//   - cualquier otro status: ErrInvalidInput.
func (uc *PaymentUseCase) HandleCallback(id, status, sessionID string) (*dto.PaymentCallbackResponse, error) {
	inv, err := uc.invoiceRepo.GetForPayment(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}

	switch status {
	case CallbackStatusSuccess:
		if sessionID == "" {
			return &dto.PaymentCallbackResponse{State: dto.PayStateError, Invoice: toPaymentResponse(inv)}, nil
		}
		session, err := uc.gateway.GetSession(sessionID)
		if err != nil {
			return nil, fmt.Errorf("verificar sesión de checkout: %w", err)
		}
		if session == nil || !session.Paid {
			// El redirect dice success pero el gateway no confirma el pago:
			// no se muta el estado de la factura.
			return &dto.PaymentCallbackResponse{State: dto.PayStateError, Invoice: toPaymentResponse(inv)}, nil
		}
		if err := uc.invoiceRepo.UpdateStatusUnscoped(id, entity.StatusPaid); err != nil {
			return nil, err
		}
		inv.Status = entity.StatusPaid
		return &dto.PaymentCallbackResponse{State: dto.PayStatePaid, Invoice: toPaymentResponse(inv)}, nil
	case CallbackStatusCanceled:
		return &dto.PaymentCallbackResponse{State: dto.PayStateCanceled, Invoice: toPaymentResponse(inv)}, nil
	default:
		return nil, domain.ErrInvalidInput
	}
}

func toPaymentResponse(inv *entity.InvoiceForPayment) *dto.InvoiceForPaymentResponse {
	return &dto.InvoiceForPaymentResponse{
		ID:           inv.ID,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		Description:  inv.Description,
		Value:        inv.Value,
		Amount:       entity.FormatMinorUnits(inv.Value),
		CustomerName: inv.CustomerName,
	}
}
