package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// NutritionistLinkRepository porto do vínculo N:N nutricionista-estabelecimento.
type NutritionistLinkRepository interface {
	Get(nutritionistID, establishmentID string) (*entity.NutritionistLink, error)
	Create(link *entity.NutritionistLink) error
	ListByNutritionist(nutritionistID string) ([]*entity.NutritionistLink, error)
}
