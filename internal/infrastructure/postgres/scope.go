package postgres

import (
	"fmt"

	"github.com/mfigueredo/invoicepay/internal/domain/entity"
)

// scopeCondition construye el predicado de ownership para el scope del
// caller, único punto donde se expresa la regla de visibilidad:
//
//	con organización activa:  <alias>organization_id = $n
//	sesión personal:          <alias>user_id = $n AND <alias>organization_id IS NULL
//
// Los registros de organización son invisibles para sesiones personales
// y viceversa. Devuelve la condición SQL y los args extendidos; todos
// los queries con scoping la consumen.
func scopeCondition(alias string, scope entity.Scope, args []any) (string, []any) {
	if scope.OrganizationID != "" {
		args = append(args, scope.OrganizationID)
		return fmt.Sprintf("%sorganization_id = $%d", alias, len(args)), args
	}
	args = append(args, scope.UserID)
	return fmt.Sprintf("%suser_id = $%d AND %sorganization_id IS NULL", alias, len(args), alias), args
}
