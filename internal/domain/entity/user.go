package entity

import "time"

// User representa una cuenta que puede autenticarse y emitir facturas.
// OrganizationID vacío significa que el usuario opera a título personal.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	Name           string
	OrganizationID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Scope devuelve el scope de ownership con el que opera el usuario.
func (u *User) Scope() Scope {
	return Scope{UserID: u.ID, OrganizationID: u.OrganizationID}
}
