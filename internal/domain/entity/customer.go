package entity

import "time"

// Customer representa el cliente al que se le emite una factura.
// Se crea junto con la factura (no hay gestión independiente de clientes)
// y es inmutable después de creado.
type Customer struct {
	ID             string
	Name           string
	Email          string
	UserID         string
	OrganizationID string // vacío = registro personal (sin organización)
	CreatedAt      time.Time
}
