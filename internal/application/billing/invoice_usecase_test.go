package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfigueredo/invoicepay/internal/application/billing"
	"github.com/mfigueredo/invoicepay/internal/application/dto"
	"github.com/mfigueredo/invoicepay/internal/domain"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
)

var (
	scopeU1  = entity.Scope{UserID: "user-1"}
	scopeU2  = entity.Scope{UserID: "user-2"}
	scopeOrg = entity.Scope{UserID: "user-1", OrganizationID: "org-1"}
)

func newInvoiceUC(s *memStore) *billing.InvoiceUseCase {
	return billing.NewInvoiceUseCase(&memTxRunner{s: s}, &memInvoiceRepo{s: s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ClienteYFacturaConScopeDelCaller(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	out, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{
		Name: "Alice", Email: "a@x.com", Value: "5.00", Description: "test",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusOpen, out.Status)
	assert.Equal(t, int64(500), out.Value)
	assert.Equal(t, "Alice", out.Customer.Name)
	assert.Equal(t, "a@x.com", out.Customer.Email)

	inv := s.invoices[out.ID]
	require.NotNil(t, inv, "la factura debe quedar persistida")
	assert.Equal(t, "user-1", inv.UserID)
	assert.Empty(t, inv.OrganizationID)

	customer := s.customers[inv.CustomerID]
	require.NotNil(t, customer, "el cliente debe quedar persistido")
	assert.Equal(t, "user-1", customer.UserID)
}

func TestCreate_ConversionFloorACentavos(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	out, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "12.345"})
	require.NoError(t, err)
	assert.Equal(t, int64(1234), out.Value)
}

func TestCreate_RoundTripDisplay(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	out, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "10.00"})
	require.NoError(t, err)

	got, err := uc.Get(scopeU1, out.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Value)
	assert.Equal(t, "$10", got.Amount)
}

func TestCreate_ValorInvalido(t *testing.T) {
	uc := newInvoiceUC(newMemStore())

	_, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "no-numérico"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "-1.00"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_SinIdentidadRechazado(t *testing.T) {
	// Identidad ausente es un fallo de autorización explícito, no un
	// retorno vacío silencioso.
	uc := newInvoiceUC(newMemStore())
	_, err := uc.Create(entity.Scope{}, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreate_RollbackSiFallaLaFactura(t *testing.T) {
	// Cliente y factura son una unidad atómica: si el segundo insert
	// falla no queda cliente huérfano.
	s := newMemStore()
	s.failInvoiceCreate = true
	uc := newInvoiceUC(s)

	_, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.Error(t, err)
	assert.Empty(t, s.customers, "el insert del cliente debe revertirse")
	assert.Empty(t, s.invoices)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / Get — aislamiento por scope
// ──────────────────────────────────────────────────────────────────────────────

func TestList_AislamientoEntreUsuarios(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{
		Name: "Alice", Email: "a@x.com", Value: "5.00", Description: "test",
	})
	require.NoError(t, err)

	listU1, err := uc.List(scopeU1)
	require.NoError(t, err)
	require.Len(t, listU1, 1)
	assert.Equal(t, created.ID, listU1[0].ID)
	assert.Equal(t, int64(500), listU1[0].Value)

	listU2, err := uc.List(scopeU2)
	require.NoError(t, err)
	assert.Empty(t, listU2, "otro usuario no ve facturas ajenas")
}

func TestList_AislamientoPersonalVsOrganizacion(t *testing.T) {
	// El mismo usuario con organización activa no ve sus registros
	// personales, y viceversa: no hay visibilidad cruzada.
	s := newMemStore()
	uc := newInvoiceUC(s)

	personal, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "p", Email: "p@x.com", Value: "1.00"})
	require.NoError(t, err)
	org, err := uc.Create(scopeOrg, dto.CreateInvoiceRequest{Name: "o", Email: "o@x.com", Value: "2.00"})
	require.NoError(t, err)

	listPersonal, err := uc.List(scopeU1)
	require.NoError(t, err)
	require.Len(t, listPersonal, 1)
	assert.Equal(t, personal.ID, listPersonal[0].ID)

	listOrg, err := uc.List(scopeOrg)
	require.NoError(t, err)
	require.Len(t, listOrg, 1)
	assert.Equal(t, org.ID, listOrg[0].ID)
}

func TestList_SinIdentidadRechazado(t *testing.T) {
	uc := newInvoiceUC(newMemStore())
	_, err := uc.List(entity.Scope{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGet_FueraDeScopeIndistinguibleDeInexistente(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.NoError(t, err)

	// id ajeno y id inexistente producen exactamente el mismo resultado
	_, errAjeno := uc.Get(scopeU2, created.ID)
	_, errInexistente := uc.Get(scopeU2, "no-existe")
	assert.ErrorIs(t, errAjeno, domain.ErrNotFound)
	assert.ErrorIs(t, errInexistente, domain.ErrNotFound)
	assert.Equal(t, errAjeno, errInexistente)
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus_Idempotente(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.NoError(t, err)

	require.NoError(t, uc.UpdateStatus(scopeU1, created.ID, entity.StatusPaid))
	require.NoError(t, uc.UpdateStatus(scopeU1, created.ID, entity.StatusPaid))

	got, err := uc.Get(scopeU1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPaid, got.Status)
}

func TestUpdateStatus_SinRestriccionDeTransicion(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.NoError(t, err)

	// paid → void → open: cualquier estado puede asignarse
	for _, status := range []string{entity.StatusPaid, entity.StatusVoid, entity.StatusOpen, entity.StatusUncollectible} {
		require.NoError(t, uc.UpdateStatus(scopeU1, created.ID, status))
		got, err := uc.Get(scopeU1, created.ID)
		require.NoError(t, err)
		assert.Equal(t, status, got.Status)
	}
}

func TestUpdateStatus_EstadoFueraDeEnumeracion(t *testing.T) {
	uc := newInvoiceUC(newMemStore())
	err := uc.UpdateStatus(scopeU1, "cualquiera", "pending")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_FueraDeScopeEsNoOp(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.NoError(t, err)

	// Otro usuario "actualiza": sin error y sin efecto
	require.NoError(t, uc.UpdateStatus(scopeU2, created.ID, entity.StatusVoid))

	got, err := uc.Get(scopeU1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusOpen, got.Status)
}

func TestDelete_NoOpSobreInexistenteOFueraDeScope(t *testing.T) {
	s := newMemStore()
	uc := newInvoiceUC(s)

	created, err := uc.Create(scopeU1, dto.CreateInvoiceRequest{Name: "n", Email: "e", Value: "1.00"})
	require.NoError(t, err)

	assert.NoError(t, uc.Delete(scopeU1, "no-existe"))
	assert.NoError(t, uc.Delete(scopeU2, created.ID), "delete ajeno no falla ni borra")
	require.Contains(t, s.invoices, created.ID)

	require.NoError(t, uc.Delete(scopeU1, created.ID))
	assert.NotContains(t, s.invoices, created.ID)
}
