package entity

import "time"

// Establishment representa um estabelecimento (restaurante/cozinha) dono de
// estoque, categorias, fornecedores e equipe.
type Establishment struct {
	ID        string
	Name      string
	CNPJ      string // único no sistema; recadastro do mesmo CNPJ associa mais um admin
	Address   string
	Phone     string
	Admins    []string // UIDs dos administradores
	CreatedAt time.Time
}

// IsAdmin informa se o uid está entre os administradores registrados.
func (e *Establishment) IsAdmin(uid string) bool {
	for _, a := range e.Admins {
		if a == uid {
			return true
		}
	}
	return false
}
