package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

var _ repository.NutritionistLinkRepository = (*NutritionistLinkRepo)(nil)

// NutritionistLinkRepo implementação do vínculo N:N sobre PostgreSQL.
type NutritionistLinkRepo struct {
	q Querier
}

// NewNutritionistLinkRepository constrói o adaptador.
func NewNutritionistLinkRepository(q Querier) *NutritionistLinkRepo {
	return &NutritionistLinkRepo{q: q}
}

// Get obtém o vínculo do par (nutricionista, estabelecimento). nil se ausente.
func (r *NutritionistLinkRepo) Get(nutritionistID, establishmentID string) (*entity.NutritionistLink, error) {
	query := `
		SELECT id, nutritionist_id, establishment_id, active, created_at
		FROM nutritionist_establishments
		WHERE nutritionist_id = $1 AND establishment_id = $2`
	var l entity.NutritionistLink
	err := r.q.QueryRow(context.Background(), query, nutritionistID, establishmentID).Scan(
		&l.ID, &l.NutritionistID, &l.EstablishmentID, &l.Active, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nutritionist link: %w", err)
	}
	return &l, nil
}

// Create insere o vínculo. A constraint única do par torna a operação
// idempotente mesmo sob corrida: o conflito é ignorado.
func (r *NutritionistLinkRepo) Create(link *entity.NutritionistLink) error {
	query := `
		INSERT INTO nutritionist_establishments (nutritionist_id, establishment_id, active)
		VALUES ($1, $2, $3)
		ON CONFLICT (nutritionist_id, establishment_id) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, link.NutritionistID, link.EstablishmentID, link.Active)
	if err != nil {
		return fmt.Errorf("insert nutritionist link: %w", err)
	}
	return nil
}

// ListByNutritionist lista os vínculos de um nutricionista.
func (r *NutritionistLinkRepo) ListByNutritionist(nutritionistID string) ([]*entity.NutritionistLink, error) {
	query := `
		SELECT id, nutritionist_id, establishment_id, active, created_at
		FROM nutritionist_establishments WHERE nutritionist_id = $1`
	rows, err := r.q.Query(context.Background(), query, nutritionistID)
	if err != nil {
		return nil, fmt.Errorf("list nutritionist links: %w", err)
	}
	defer rows.Close()
	var list []*entity.NutritionistLink
	for rows.Next() {
		var l entity.NutritionistLink
		if err := rows.Scan(&l.ID, &l.NutritionistID, &l.EstablishmentID, &l.Active, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan nutritionist link: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
