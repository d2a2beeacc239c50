package entity

import "time"

// User representa um usuário do sistema. O ID é o mesmo do serviço de
// identidade (uid). Admin e colaborador vinculam-se a estabelecimentos via
// Establishments; nutricionista via a entidade NutritionistLink (N:N).
type User struct {
	ID             string
	Name           string
	CPF            string // chave de deduplicação durável para nutricionistas
	Email          string
	Phone          string
	Role           Role
	Establishments []string // set de IDs de estabelecimento (sem duplicatas)
	PasswordHash   string   // bcrypt, nunca em claro depois de persistir
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// BelongsTo informa se o usuário está vinculado ao estabelecimento.
func (u *User) BelongsTo(establishmentID string) bool {
	for _, id := range u.Establishments {
		if id == establishmentID {
			return true
		}
	}
	return false
}

// SharesEstablishmentWith informa se os dois usuários compartilham ao menos
// um estabelecimento (interseção não vazia).
func (u *User) SharesEstablishmentWith(other *User) bool {
	for _, id := range u.Establishments {
		if other.BelongsTo(id) {
			return true
		}
	}
	return false
}
