package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// UserRepository define o porto de persistência para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByCPF(cpf string) (*entity.User, error)
	Update(user *entity.User) error
	// AddEstablishment acrescenta o estabelecimento ao set do usuário (união).
	AddEstablishment(userID, establishmentID string) error
	UpdatePasswordHash(userID, hash string) error
	ListByEstablishment(establishmentID string) ([]*entity.User, error)
}
