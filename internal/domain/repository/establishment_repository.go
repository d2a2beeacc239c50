package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// EstablishmentRepository define o porto de persistência para Establishment (DIP).
type EstablishmentRepository interface {
	Create(est *entity.Establishment) error
	GetByID(id string) (*entity.Establishment, error)
	GetByCNPJ(cnpj string) (*entity.Establishment, error)
	// AddAdmin acrescenta o uid ao set de admins (união, sem duplicatas).
	AddAdmin(establishmentID, uid string) error
	ListByAdmin(uid string) ([]*entity.Establishment, error)
}
