package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mfigueredo/invoicepay/internal/domain/entity"
	"github.com/mfigueredo/invoicepay/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Columnas del join factura + cliente que consumen listado y detalle.
const joinedColumns = `
	i.id, i.customer_id, i.value, i.description, i.status,
	i.user_id, i.organization_id, i.created_at,
	c.id, c.name, c.email, c.user_id, c.organization_id, c.created_at`

// Create persiste la factura. El cliente referido ya debe existir (se
// inserta antes, dentro de la misma transacción).
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (id, customer_id, value, description, status, user_id, organization_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Value, invoice.Description, invoice.Status,
		invoice.UserID, nullIfEmpty(invoice.OrganizationID), invoice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// ListByScope lista las facturas visibles para el scope, con su cliente.
// Cero filas devuelve slice vacío, nunca nil.
func (r *InvoiceRepo) ListByScope(scope entity.Scope) ([]*entity.InvoiceWithCustomer, error) {
	cond, args := scopeCondition("i.", scope, nil)
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		INNER JOIN customers c ON c.id = i.customer_id
		WHERE %s
		ORDER BY i.created_at DESC`, joinedColumns, cond)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvoiceWithCustomer, 0)
	for rows.Next() {
		row, err := scanJoined(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// GetByIDAndScope obtiene una factura por id dentro del scope. Un id
// ajeno al scope y un id inexistente devuelven igualmente (nil, nil).
func (r *InvoiceRepo) GetByIDAndScope(id string, scope entity.Scope) (*entity.InvoiceWithCustomer, error) {
	args := []any{id}
	cond, args := scopeCondition("i.", scope, args)
	query := fmt.Sprintf(`
		SELECT %s
		FROM invoices i
		INNER JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1 AND %s
		LIMIT 1`, joinedColumns, cond)
	row, err := scanJoined(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return row, nil
}

// UpdateStatus asigna el estado dentro del scope. No se verifica el
// número de filas afectadas: id ajeno o inexistente es no-op.
func (r *InvoiceRepo) UpdateStatus(id string, scope entity.Scope, status string) error {
	args := []any{id, status}
	cond, args := scopeCondition("", scope, args)
	query := fmt.Sprintf(`UPDATE invoices SET status = $2 WHERE id = $1 AND %s`, cond)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// Delete elimina la factura dentro del scope (no-op si no coincide).
func (r *InvoiceRepo) Delete(id string, scope entity.Scope) error {
	args := []any{id}
	cond, args := scopeCondition("", scope, args)
	query := fmt.Sprintf(`DELETE FROM invoices WHERE id = $1 AND %s`, cond)
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// GetForPayment lectura sin scoping para el flujo de pago.
func (r *InvoiceRepo) GetForPayment(id string) (*entity.InvoiceForPayment, error) {
	query := `
		SELECT i.id, i.status, i.created_at, i.description, i.value, c.name
		FROM invoices i
		INNER JOIN customers c ON c.id = i.customer_id
		WHERE i.id = $1
		LIMIT 1`
	var inv entity.InvoiceForPayment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&inv.ID, &inv.Status, &inv.CreatedAt, &inv.Description, &inv.Value, &inv.CustomerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice for payment: %w", err)
	}
	return &inv, nil
}

// UpdateStatusUnscoped asigna el estado sin filtro de ownership; lo usa
// el callback de pago verificado contra el gateway.
func (r *InvoiceRepo) UpdateStatusUnscoped(id string, status string) error {
	query := `UPDATE invoices SET status = $2 WHERE id = $1`
	if _, err := r.q.Exec(context.Background(), query, id, status); err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	return nil
}

// scanJoined lee las columnas del join (mismo orden que joinedColumns).
func scanJoined(row pgx.Row) (*entity.InvoiceWithCustomer, error) {
	var out entity.InvoiceWithCustomer
	var invOrg, custOrg *string
	err := row.Scan(
		&out.Invoice.ID, &out.Invoice.CustomerID, &out.Invoice.Value,
		&out.Invoice.Description, &out.Invoice.Status,
		&out.Invoice.UserID, &invOrg, &out.Invoice.CreatedAt,
		&out.Customer.ID, &out.Customer.Name, &out.Customer.Email,
		&out.Customer.UserID, &custOrg, &out.Customer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	out.Invoice.OrganizationID = derefStr(invOrg)
	out.Customer.OrganizationID = derefStr(custOrg)
	return &out, nil
}
