package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// SupplierRepository define o porto de persistência para Supplier (DIP).
type SupplierRepository interface {
	Create(sup *entity.Supplier, nameKey string) error
	GetByID(id string) (*entity.Supplier, error)
	GetByNameKey(establishmentID, nameKey string) (*entity.Supplier, error)
	Update(sup *entity.Supplier, nameKey string) error
	Delete(id string) error
	ListByEstablishment(establishmentID string) ([]*entity.Supplier, error)
}
