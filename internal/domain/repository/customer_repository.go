package repository

import "github.com/mfigueredo/invoicepay/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// El cliente se crea junto con la factura y no se gestiona por separado,
// por eso el puerto solo expone la inserción.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
}
