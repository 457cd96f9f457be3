package domain

// Role é o papel de quem opera o layout, carregado no JWT.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleViewer   Role = "viewer"
)

// Valid indica se o papel é conhecido.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleViewer:
		return true
	}
	return false
}

// LayoutEditors são os papéis que podem alterar zonas e prateleiras.
var LayoutEditors = []Role{RoleAdmin, RoleOperator}
