package entity

// Role papel de um usuário no sistema.
type Role string

// Papéis válidos. Os valores são os mesmos gravados no banco e nos tokens.
const (
	RoleAdmin         Role = "admin"
	RoleColaborador   Role = "colaborador"
	RoleNutricionista Role = "nutricionista"
)

// ParseRole reconcilia as variantes históricas do campo ("tipo" vs "role",
// inglês vs português) em um único Role. Devolve "" para valores desconhecidos.
// A reconciliação acontece uma vez, na borda — o domínio só vê Role.
func ParseRole(s string) Role {
	switch s {
	case "admin":
		return RoleAdmin
	case "colaborador", "collaborator":
		return RoleColaborador
	case "nutricionista", "nutritionist":
		return RoleNutricionista
	}
	return ""
}

// Valid informa se o papel é um dos conhecidos.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleColaborador || r == RoleNutricionista
}

func (r Role) String() string { return string(r) }
