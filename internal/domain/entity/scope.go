package entity

// Scope identifica al dueño de los registros visibles en una operación:
// un usuario actuando a título personal (OrganizationID vacío) o una
// organización activa. Nunca se interpretan ambos a la vez: si hay
// organización, el filtro es por organización; si no, por usuario sin
// organización.
type Scope struct {
	UserID         string
	OrganizationID string
}

// Authenticated indica si el scope proviene de una identidad resuelta.
// Un scope sin UserID no puede ejecutar ninguna operación con ownership.
func (s Scope) Authenticated() bool {
	return s.UserID != ""
}

// Personal indica si el scope es de usuario sin organización activa.
func (s Scope) Personal() bool {
	return s.OrganizationID == ""
}
