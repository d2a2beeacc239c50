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

// SupplierUseCase CRUD de fornecedores, escopado por estabelecimento.
// Unicidade por nome normalizado, igual às categorias.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase constrói o caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create cria um fornecedor. Devolve ErrDuplicate se o nome já existir.
func (uc *SupplierUseCase) Create(ctx context.Context, establishmentID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
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
	sup := &entity.Supplier{
		ID:              uuid.New().String(),
		EstablishmentID: establishmentID,
		Name:            in.Name,
		Phone:           in.Phone,
		Email:           in.Email,
		CreatedAt:       time.Now(),
	}
	if err := uc.repo.Create(sup, key); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// Update atualiza um fornecedor, mantendo a unicidade do nome normalizado.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if id == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	sup, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	key := normalize.Key(in.Name)
	existing, err := uc.repo.GetByNameKey(sup.EstablishmentID, key)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, domain.ErrDuplicate
	}
	sup.Name = in.Name
	sup.Phone = in.Phone
	sup.Email = in.Email
	if err := uc.repo.Update(sup, key); err != nil {
		return nil, err
	}
	return toSupplierResponse(sup), nil
}

// Delete remove um fornecedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	sup, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sup == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista os fornecedores do estabelecimento.
func (uc *SupplierUseCase) List(ctx context.Context, establishmentID string) (*dto.SupplierListResponse, error) {
	if establishmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByEstablishment(establishmentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{Items: items}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:              s.ID,
		EstablishmentID: s.EstablishmentID,
		Name:            s.Name,
		Phone:           s.Phone,
		Email:           s.Email,
		CreatedAt:       s.CreatedAt,
	}
}
