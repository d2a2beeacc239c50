package collaborator

import (
	"context"
	"strings"
	"time"

	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// Policy regras configuráveis do provisionamento. AllowSelfReset e
// AllowAdminTargetReset correspondem às decisões de produto deixadas em
// aberto (reset da própria senha / de outro admin); o padrão é bloquear.
type Policy struct {
	DefaultPassword       string
	AllowSelfReset        bool
	AllowAdminTargetReset bool
}

// UseCase fluxo de provisionamento de colaboradores: resolve ou cria a
// identidade, faz o merge do perfil e aplica o vínculo conforme o papel.
type UseCase struct {
	userRepo repository.UserRepository
	estRepo  repository.EstablishmentRepository
	linkRepo repository.NutritionistLinkRepository
	identity IdentityService
	policy   Policy
}

// NewUseCase constrói o caso de uso de colaboradores.
func NewUseCase(
	userRepo repository.UserRepository,
	estRepo repository.EstablishmentRepository,
	linkRepo repository.NutritionistLinkRepository,
	identity IdentityService,
	policy Policy,
) *UseCase {
	if policy.DefaultPassword == "" {
		policy.DefaultPassword = "123456"
	}
	return &UseCase{userRepo: userRepo, estRepo: estRepo, linkRepo: linkRepo, identity: identity, policy: policy}
}

// CreateInput entrada do provisionamento.
type CreateInput struct {
	Name            string
	CPF             string
	Email           string
	Phone           string
	EstablishmentID string
	Role            entity.Role
}

// Create resolve ou cria a identidade do colaborador e vincula ao
// estabelecimento. Ordem de resolução: CPF (nutricionista) → email no serviço
// de identidade → criação com a senha padrão. O chamador precisa ser admin
// (pelo papel gravado ou por constar nos admins do estabelecimento); a
// autorização é verificada antes de qualquer escrita. Idempotente: chamadas
// repetidas devolvem o mesmo uid e não duplicam vínculos.
func (uc *UseCase) Create(ctx context.Context, callerID string, in CreateInput) (string, error) {
	if callerID == "" {
		return "", domain.ErrUnauthorized
	}
	if in.Name == "" || in.EstablishmentID == "" || !in.Role.Valid() {
		return "", domain.ErrInvalidInput
	}
	if in.Role == entity.RoleNutricionista && in.CPF == "" {
		return "", domain.ErrInvalidInput
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	// Porta de autorização: só as duas leituras necessárias antes de decidir.
	caller, err := uc.userRepo.GetByID(callerID)
	if err != nil {
		return "", err
	}
	est, err := uc.estRepo.GetByID(in.EstablishmentID)
	if err != nil {
		return "", err
	}
	if est == nil {
		return "", domain.ErrNotFound
	}
	isAdminByRole := caller != nil && caller.Role == entity.RoleAdmin
	if !isAdminByRole && !est.IsAdmin(callerID) {
		return "", domain.ErrForbidden
	}

	// Resolução da identidade, primeira correspondência vence.
	uid := ""
	if in.Role == entity.RoleNutricionista {
		existing, err := uc.userRepo.GetByCPF(in.CPF)
		if err != nil {
			return "", err
		}
		if existing != nil {
			uid = existing.ID
		}
	}
	if uid == "" && in.Email != "" {
		uid, err = uc.identity.FindUIDByEmail(in.Email)
		if err != nil {
			return "", err
		}
	}
	if uid == "" {
		if in.Email == "" {
			return "", domain.ErrInvalidInput
		}
		uid, err = uc.identity.CreateIdentity(in.Email, uc.policy.DefaultPassword, in.Name)
		if err != nil {
			return "", err
		}
	}

	if err := uc.mergeProfile(uid, in); err != nil {
		return "", err
	}

	// Vínculo conforme o papel.
	if in.Role == entity.RoleNutricionista {
		if err := uc.ensureLink(uid, in.EstablishmentID); err != nil {
			return "", err
		}
	} else {
		if err := uc.userRepo.AddEstablishment(uid, in.EstablishmentID); err != nil {
			return "", err
		}
	}
	return uid, nil
}

// mergeProfile grava os campos do perfil sem apagar os que não vieram
// preenchidos. Nome e papel sempre sobrescrevem; o resto só quando informado.
func (uc *UseCase) mergeProfile(uid string, in CreateInput) error {
	user, err := uc.userRepo.GetByID(uid)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	user.Name = in.Name
	user.Role = in.Role
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.CPF != "" {
		user.CPF = in.CPF
	}
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(user)
}

// ensureLink cria o vínculo (nutricionistaId, estabelecimentoId) se ausente.
func (uc *UseCase) ensureLink(nutritionistID, establishmentID string) error {
	link, err := uc.linkRepo.Get(nutritionistID, establishmentID)
	if err != nil {
		return err
	}
	if link != nil {
		return nil
	}
	return uc.linkRepo.Create(&entity.NutritionistLink{
		NutritionistID:  nutritionistID,
		EstablishmentID: establishmentID,
		Active:          true,
	})
}

// ResetPassword força a senha do alvo para a senha padrão. Só admins; o alvo
// precisa existir e compartilhar ao menos um estabelecimento com o chamador.
// Reset da própria senha e de outro admin seguem a Policy.
func (uc *UseCase) ResetPassword(ctx context.Context, callerID, targetUID string) error {
	if callerID == "" {
		return domain.ErrUnauthorized
	}
	if targetUID == "" {
		return domain.ErrInvalidInput
	}

	caller, err := uc.userRepo.GetByID(callerID)
	if err != nil {
		return err
	}
	if caller == nil {
		return domain.ErrForbidden
	}
	if caller.Role != entity.RoleAdmin {
		return domain.ErrForbidden
	}
	if targetUID == callerID && !uc.policy.AllowSelfReset {
		return domain.ErrForbidden
	}

	target, err := uc.userRepo.GetByID(targetUID)
	if err != nil {
		return err
	}
	if target == nil {
		return domain.ErrNotFound
	}
	if target.Role == entity.RoleAdmin && targetUID != callerID && !uc.policy.AllowAdminTargetReset {
		return domain.ErrForbidden
	}
	if !caller.SharesEstablishmentWith(target) {
		return domain.ErrForbidden
	}

	return uc.identity.SetPassword(targetUID, uc.policy.DefaultPassword)
}

// List devolve os usuários vinculados ao estabelecimento.
func (uc *UseCase) List(ctx context.Context, establishmentID string) ([]*entity.User, error) {
	if establishmentID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.userRepo.ListByEstablishment(establishmentID)
}
