package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementação do porto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository constrói o adaptador de persistência de usuários.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `
	id, name, cpf, email, phone, role, establishments, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	err := row.Scan(
		&u.ID, &u.Name, &u.CPF, &u.Email, &u.Phone, &role,
		&u.Establishments, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

// Create persiste um usuário novo.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, name, cpf, email, phone, role, establishments, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	ests := user.Establishments
	if ests == nil {
		ests = []string{}
	}
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.CPF, user.Email, user.Phone, string(user.Role),
		ests, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtém um usuário por ID.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByEmail obtém um usuário por email.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetByCPF obtém um usuário por CPF (chave de deduplicação de nutricionistas).
func (r *UserRepo) GetByCPF(cpf string) (*entity.User, error) {
	query := `SELECT` + userColumns + ` FROM users WHERE cpf = $1 AND cpf <> '' LIMIT 1`
	user, err := scanUser(r.q.QueryRow(context.Background(), query, cpf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by cpf: %w", err)
	}
	return user, nil
}

// Update grava os campos de perfil do usuário.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users SET name = $2, cpf = $3, email = $4, phone = $5, role = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Name, user.CPF, user.Email, user.Phone, string(user.Role), user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// AddEstablishment acrescenta o estabelecimento ao set do usuário.
// União no próprio UPDATE: sem duplicatas mesmo sob chamadas concorrentes.
func (r *UserRepo) AddEstablishment(userID, establishmentID string) error {
	query := `
		UPDATE users SET establishments = array_append(establishments, $2)
		WHERE id = $1 AND NOT ($2 = ANY(establishments))`
	_, err := r.q.Exec(context.Background(), query, userID, establishmentID)
	if err != nil {
		return fmt.Errorf("add establishment to user: %w", err)
	}
	return nil
}

// UpdatePasswordHash força o hash de senha do usuário.
func (r *UserRepo) UpdatePasswordHash(userID, hash string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, userID, hash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// ListByEstablishment lista usuários vinculados ao estabelecimento, incluindo
// nutricionistas vinculados pela tabela de vínculos.
func (r *UserRepo) ListByEstablishment(establishmentID string) ([]*entity.User, error) {
	query := `
		SELECT` + userColumns + `
		FROM users
		WHERE $1 = ANY(establishments)
		   OR id IN (
			SELECT nutritionist_id FROM nutritionist_establishments
			WHERE establishment_id = $1 AND active
		   )
		ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list users by establishment: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, user)
	}
	return list, rows.Err()
}
