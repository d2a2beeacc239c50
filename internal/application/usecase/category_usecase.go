package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
	"github.com/estoquezen/estoque-api/pkg/normalize"
)

// CategoryUseCase CRUD de categorias, escopado por estabelecimento.
// Unicidade por nome normalizado (sem acentos/maiúsculas).
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase constrói o caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create cria uma categoria. Devolve ErrDuplicate se o nome (normalizado) já
// existir no estabelecimento.
func (uc *CategoryUseCase) Create(ctx context.Context, establishmentID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if establishmentID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	key := normalize.Key(in.Name)
	existing, err := uc.repo.GetByNameKey(establishmentID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	cat := &entity.Category{
		ID:              uuid.New().String(),
		EstablishmentID: establishmentID,
		Name:            in.Name,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(cat, key); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Update renomeia uma categoria, mantendo a unicidade do nome normalizado.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if id == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	key := normalize.Key(in.Name)
	existing, err := uc.repo.GetByNameKey(cat.EstablishmentID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, domain.ErrDuplicate
	}
	cat.Name = in.Name
	if err := uc.repo.Update(cat, key); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Delete remove uma categoria.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	cat, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista as categorias do estabelecimento.
func (uc *CategoryUseCase) List(ctx context.Context, establishmentID string) (*dto.CategoryListResponse, error) {
	if establishmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByEstablishment(establishmentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items}, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:              c.ID,
		EstablishmentID: c.EstablishmentID,
		Name:            c.Name,
		CreatedAt:       c.CreatedAt,
	}
}
