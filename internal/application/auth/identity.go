package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/estoquezen/estoque-api/internal/application/collaborator"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

var _ collaborator.IdentityService = (*IdentityAdapter)(nil)

// IdentityAdapter implementa o serviço de identidade do provisionamento sobre
// a tabela de usuários com bcrypt. Trocar por um provedor de identidade
// hospedado é só implementar collaborator.IdentityService.
type IdentityAdapter struct {
	userRepo repository.UserRepository
}

// NewIdentityAdapter constrói o adaptador.
func NewIdentityAdapter(userRepo repository.UserRepository) *IdentityAdapter {
	return &IdentityAdapter{userRepo: userRepo}
}

// FindUIDByEmail devolve o uid do usuário com esse email, ou "" se não existir.
func (a *IdentityAdapter) FindUIDByEmail(email string) (string, error) {
	user, err := a.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}
	return user.ID, nil
}

// CreateIdentity cria a identidade com a senha dada. O perfil (papel,
// telefone, cpf) é preenchido depois pelo merge do provisionamento.
func (a *IdentityAdapter) CreateIdentity(email, password, displayName string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	existing, err := a.userRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         displayName,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.userRepo.Create(user); err != nil {
		return "", err
	}
	return user.ID, nil
}

// SetPassword força a senha do usuário para o valor dado.
func (a *IdentityAdapter) SetPassword(uid, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return a.userRepo.UpdatePasswordHash(uid, string(hash))
}
