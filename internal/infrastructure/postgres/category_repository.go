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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementação de CategoryRepository sobre PostgreSQL.
// A coluna name_key guarda a forma normalizada do nome e carrega a
// constraint única por estabelecimento.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository constrói o adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.EstablishmentID, &c.Name, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste uma categoria. Nome normalizado duplicado → ErrDuplicate.
func (r *CategoryRepo) Create(cat *entity.Category, nameKey string) error {
	query := `
		INSERT INTO categories (id, establishment_id, name, name_key, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		cat.ID, cat.EstablishmentID, cat.Name, nameKey, cat.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetByID obtém uma categoria por ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	query := `SELECT id, establishment_id, name, created_at FROM categories WHERE id = $1`
	cat, err := scanCategory(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return cat, nil
}

// GetByNameKey obtém uma categoria pela forma normalizada do nome.
func (r *CategoryRepo) GetByNameKey(establishmentID, nameKey string) (*entity.Category, error) {
	query := `
		SELECT id, establishment_id, name, created_at
		FROM categories WHERE establishment_id = $1 AND name_key = $2`
	cat, err := scanCategory(r.q.QueryRow(context.Background(), query, establishmentID, nameKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by name key: %w", err)
	}
	return cat, nil
}

// Update grava nome e chave normalizada da categoria.
func (r *CategoryRepo) Update(cat *entity.Category, nameKey string) error {
	query := `UPDATE categories SET name = $2, name_key = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, cat.ID, cat.Name, nameKey)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete remove uma categoria por ID.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListByEstablishment lista as categorias do estabelecimento em ordem alfabética.
func (r *CategoryRepo) ListByEstablishment(establishmentID string) ([]*entity.Category, error) {
	query := `
		SELECT id, establishment_id, name, created_at
		FROM categories WHERE establishment_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, cat)
	}
	return list, rows.Err()
}
