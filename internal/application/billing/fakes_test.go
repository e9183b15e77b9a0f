package billing_test

import (
	"fmt"

	"github.com/mfigueredo/invoicepay/internal/application/billing"
	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Colaborador de persistencia en memoria para los tests de casos de uso.
// Replica el contrato de los repos PostgreSQL: predicado de scope,
// (nil, nil) cuando no hay fila, no-op en update/delete sin coincidencia.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	customers map[string]*entity.Customer
	invoices  map[string]*entity.Invoice

	// fallos inyectables
	failInvoiceCreate bool
}

func newMemStore() *memStore {
	return &memStore{
		customers: make(map[string]*entity.Customer),
		invoices:  make(map[string]*entity.Invoice),
	}
}

func matchesScope(userID, organizationID string, scope entity.Scope) bool {
	if scope.OrganizationID != "" {
		return organizationID == scope.OrganizationID
	}
	return userID == scope.UserID && organizationID == ""
}

// memCustomerRepo implementa repository.CustomerRepository.
type memCustomerRepo struct{ s *memStore }

func (r *memCustomerRepo) Create(c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

// memInvoiceRepo implementa repository.InvoiceRepository.
type memInvoiceRepo struct{ s *memStore }

func (r *memInvoiceRepo) Create(inv *entity.Invoice) error {
	if r.s.failInvoiceCreate {
		return fmt.Errorf("insert invoice: colaborador caído")
	}
	cp := *inv
	r.s.invoices[inv.ID] = &cp
	return nil
}

func (r *memInvoiceRepo) ListByScope(scope entity.Scope) ([]*entity.InvoiceWithCustomer, error) {
	list := make([]*entity.InvoiceWithCustomer, 0)
	for _, inv := range r.s.invoices {
		if !matchesScope(inv.UserID, inv.OrganizationID, scope) {
			continue
		}
		list = append(list, r.joined(inv))
	}
	return list, nil
}

func (r *memInvoiceRepo) GetByIDAndScope(id string, scope entity.Scope) (*entity.InvoiceWithCustomer, error) {
	inv, ok := r.s.invoices[id]
	if !ok || !matchesScope(inv.UserID, inv.OrganizationID, scope) {
		return nil, nil
	}
	return r.joined(inv), nil
}

func (r *memInvoiceRepo) UpdateStatus(id string, scope entity.Scope, status string) error {
	inv, ok := r.s.invoices[id]
	if !ok || !matchesScope(inv.UserID, inv.OrganizationID, scope) {
		return nil // no-op silencioso
	}
	inv.Status = status
	return nil
}

func (r *memInvoiceRepo) Delete(id string, scope entity.Scope) error {
	inv, ok := r.s.invoices[id]
	if !ok || !matchesScope(inv.UserID, inv.OrganizationID, scope) {
		return nil // no-op silencioso
	}
	delete(r.s.invoices, id)
	return nil
}

func (r *memInvoiceRepo) GetForPayment(id string) (*entity.InvoiceForPayment, error) {
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	var customerName string
	if c, ok := r.s.customers[inv.CustomerID]; ok {
		customerName = c.Name
	}
	return &entity.InvoiceForPayment{
		ID:           inv.ID,
		Status:       inv.Status,
		CreatedAt:    inv.CreatedAt,
		Description:  inv.Description,
		Value:        inv.Value,
		CustomerName: customerName,
	}, nil
}

func (r *memInvoiceRepo) UpdateStatusUnscoped(id string, status string) error {
	if inv, ok := r.s.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *memInvoiceRepo) joined(inv *entity.Invoice) *entity.InvoiceWithCustomer {
	out := &entity.InvoiceWithCustomer{Invoice: *inv}
	if c, ok := r.s.customers[inv.CustomerID]; ok {
		out.Customer = *c
	}
	return out
}

// memTxRunner implementa billing.BillingTxRunner con rollback por
// snapshot: si fn falla, el store vuelve al estado previo.
type memTxRunner struct{ s *memStore }

func (t *memTxRunner) RunBilling(fn func(repository.CustomerRepository, repository.InvoiceRepository) error) error {
	customersBefore := make(map[string]*entity.Customer, len(t.s.customers))
	for k, v := range t.s.customers {
		customersBefore[k] = v
	}
	invoicesBefore := make(map[string]*entity.Invoice, len(t.s.invoices))
	for k, v := range t.s.invoices {
		invoicesBefore[k] = v
	}
	if err := fn(&memCustomerRepo{s: t.s}, &memInvoiceRepo{s: t.s}); err != nil {
		t.s.customers = customersBefore
		t.s.invoices = invoicesBefore
		return err
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Gateway de pagos falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeGateway struct {
	createdParams []billing.CheckoutParams
	newSession    *billing.CheckoutSession            // respuesta de CreateSession
	sessions      map[string]*billing.CheckoutSession // para GetSession
	createErr     error
	getErr        error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sessions: make(map[string]*billing.CheckoutSession)}
}

func (g *fakeGateway) CreateSession(params billing.CheckoutParams) (*billing.CheckoutSession, error) {
	g.createdParams = append(g.createdParams, params)
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.newSession, nil
}

func (g *fakeGateway) GetSession(sessionID string) (*billing.CheckoutSession, error) {
	if g.getErr != nil {
		return nil, g.getErr
	}
	return g.sessions[sessionID], nil
}

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)
var _ repository.InvoiceRepository = (*memInvoiceRepo)(nil)
var _ billing.BillingTxRunner = (*memTxRunner)(nil)
var _ billing.PaymentGateway = (*fakeGateway)(nil)
