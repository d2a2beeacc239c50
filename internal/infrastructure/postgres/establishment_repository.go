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

var _ repository.EstablishmentRepository = (*EstablishmentRepo)(nil)

// EstablishmentRepo implementação do porto EstablishmentRepository sobre PostgreSQL.
type EstablishmentRepo struct {
	q Querier
}

// NewEstablishmentRepository constrói o adaptador.
func NewEstablishmentRepository(q Querier) *EstablishmentRepo {
	return &EstablishmentRepo{q: q}
}

func scanEstablishment(row pgx.Row) (*entity.Establishment, error) {
	var e entity.Establishment
	err := row.Scan(&e.ID, &e.Name, &e.CNPJ, &e.Address, &e.Phone, &e.Admins, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste um estabelecimento novo. CNPJ duplicado → ErrDuplicate.
func (r *EstablishmentRepo) Create(est *entity.Establishment) error {
	query := `
		INSERT INTO establishments (id, name, cnpj, address, phone, admins, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		est.ID, est.Name, est.CNPJ, est.Address, est.Phone, est.Admins, est.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert establishment: %w", err)
	}
	return nil
}

// GetByID obtém um estabelecimento por ID.
func (r *EstablishmentRepo) GetByID(id string) (*entity.Establishment, error) {
	query := `SELECT id, name, cnpj, address, phone, admins, created_at FROM establishments WHERE id = $1`
	est, err := scanEstablishment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get establishment by id: %w", err)
	}
	return est, nil
}

// GetByCNPJ obtém um estabelecimento por CNPJ.
func (r *EstablishmentRepo) GetByCNPJ(cnpj string) (*entity.Establishment, error) {
	query := `SELECT id, name, cnpj, address, phone, admins, created_at FROM establishments WHERE cnpj = $1`
	est, err := scanEstablishment(r.q.QueryRow(context.Background(), query, cnpj))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get establishment by cnpj: %w", err)
	}
	return est, nil
}

// AddAdmin acrescenta o uid ao set de admins (união no próprio UPDATE).
func (r *EstablishmentRepo) AddAdmin(establishmentID, uid string) error {
	query := `
		UPDATE establishments SET admins = array_append(admins, $2)
		WHERE id = $1 AND NOT ($2 = ANY(admins))`
	_, err := r.q.Exec(context.Background(), query, establishmentID, uid)
	if err != nil {
		return fmt.Errorf("add admin to establishment: %w", err)
	}
	return nil
}

// ListByAdmin lista estabelecimentos administrados pelo uid.
func (r *EstablishmentRepo) ListByAdmin(uid string) ([]*entity.Establishment, error) {
	query := `
		SELECT id, name, cnpj, address, phone, admins, created_at
		FROM establishments WHERE $1 = ANY(admins) ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, uid)
	if err != nil {
		return nil, fmt.Errorf("list establishments by admin: %w", err)
	}
	defer rows.Close()
	var list []*entity.Establishment
	for rows.Next() {
		est, err := scanEstablishment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan establishment: %w", err)
		}
		list = append(list, est)
	}
	return list, rows.Err()
}
