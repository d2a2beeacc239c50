package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// EstablishmentUseCase cadastro e listagem de estabelecimentos.
type EstablishmentUseCase struct {
	estRepo  repository.EstablishmentRepository
	userRepo repository.UserRepository
}

// NewEstablishmentUseCase constrói o caso de uso.
func NewEstablishmentUseCase(estRepo repository.EstablishmentRepository, userRepo repository.UserRepository) *EstablishmentUseCase {
	return &EstablishmentUseCase{estRepo: estRepo, userRepo: userRepo}
}

// Register cadastra ou associa um estabelecimento. Um CNPJ mapeia para no
// máximo um estabelecimento: se já existir, o chamador vira admin adicional e
// o resultado é "existente"; senão o estabelecimento é criado ("novo"). Nos
// dois casos o estabelecimento entra no set do usuário (união, sem duplicatas).
func (uc *EstablishmentUseCase) Register(ctx context.Context, callerID string, in dto.RegisterEstablishmentRequest) (*dto.RegisterEstablishmentResponse, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" || in.CNPJ == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.estRepo.GetByCNPJ(in.CNPJ)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := uc.estRepo.AddAdmin(existing.ID, callerID); err != nil {
			return nil, err
		}
		if err := uc.userRepo.AddEstablishment(callerID, existing.ID); err != nil {
			return nil, err
		}
		return &dto.RegisterEstablishmentResponse{
			Tipo:            dto.EstablishmentOutcomeExisting,
			EstablishmentID: existing.ID,
			Establishment:   *toEstablishmentResponse(existing),
		}, nil
	}

	est := &entity.Establishment{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CNPJ:      in.CNPJ,
		Address:   in.Address,
		Phone:     in.Phone,
		Admins:    []string{callerID},
		CreatedAt: time.Now(),
	}
	if err := uc.estRepo.Create(est); err != nil {
		return nil, err
	}
	if err := uc.userRepo.AddEstablishment(callerID, est.ID); err != nil {
		return nil, err
	}
	return &dto.RegisterEstablishmentResponse{
		Tipo:            dto.EstablishmentOutcomeNew,
		EstablishmentID: est.ID,
		Establishment:   *toEstablishmentResponse(est),
	}, nil
}

// ListMine lista os estabelecimentos administrados pelo chamador.
func (uc *EstablishmentUseCase) ListMine(ctx context.Context, callerID string) (*dto.EstablishmentListResponse, error) {
	if callerID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.estRepo.ListByAdmin(callerID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EstablishmentResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEstablishmentResponse(e))
	}
	return &dto.EstablishmentListResponse{Items: items}, nil
}

// GetByID devolve um estabelecimento, validando que o chamador é admin dele.
func (uc *EstablishmentUseCase) GetByID(ctx context.Context, callerID, id string) (*dto.EstablishmentResponse, error) {
	est, err := uc.estRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if est == nil {
		return nil, domain.ErrNotFound
	}
	if !est.IsAdmin(callerID) {
		return nil, domain.ErrForbidden
	}
	return toEstablishmentResponse(est), nil
}

func toEstablishmentResponse(e *entity.Establishment) *dto.EstablishmentResponse {
	if e == nil {
		return nil
	}
	admins := e.Admins
	if admins == nil {
		admins = []string{}
	}
	return &dto.EstablishmentResponse{
		ID:        e.ID,
		Name:      e.Name,
		CNPJ:      e.CNPJ,
		Address:   e.Address,
		Phone:     e.Phone,
		Admins:    admins,
		CreatedAt: e.CreatedAt,
	}
}
