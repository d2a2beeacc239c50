package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// CategoryRepository define o porto de persistência para Category (DIP).
type CategoryRepository interface {
	Create(cat *entity.Category, nameKey string) error
	GetByID(id string) (*entity.Category, error)
	GetByNameKey(establishmentID, nameKey string) (*entity.Category, error)
	Update(cat *entity.Category, nameKey string) error
	Delete(id string) error
	ListByEstablishment(establishmentID string) ([]*entity.Category, error)
}
