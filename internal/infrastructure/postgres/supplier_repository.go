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

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementação de SupplierRepository sobre PostgreSQL.
// Mesmo esquema de unicidade normalizada usado em CategoryRepo.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository constrói o adaptador.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.EstablishmentID, &s.Name, &s.Phone, &s.Email, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste um fornecedor. Nome normalizado duplicado → ErrDuplicate.
func (r *SupplierRepo) Create(sup *entity.Supplier, nameKey string) error {
	query := `
		INSERT INTO suppliers (id, establishment_id, name, name_key, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		sup.ID, sup.EstablishmentID, sup.Name, nameKey, sup.Phone, sup.Email, sup.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtém um fornecedor por ID.
func (r *SupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	query := `SELECT id, establishment_id, name, phone, email, created_at FROM suppliers WHERE id = $1`
	sup, err := scanSupplier(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return sup, nil
}

// GetByNameKey obtém um fornecedor pela forma normalizada do nome.
func (r *SupplierRepo) GetByNameKey(establishmentID, nameKey string) (*entity.Supplier, error) {
	query := `
		SELECT id, establishment_id, name, phone, email, created_at
		FROM suppliers WHERE establishment_id = $1 AND name_key = $2`
	sup, err := scanSupplier(r.q.QueryRow(context.Background(), query, establishmentID, nameKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by name key: %w", err)
	}
	return sup, nil
}

// Update grava os campos mutáveis do fornecedor.
func (r *SupplierRepo) Update(sup *entity.Supplier, nameKey string) error {
	query := `
		UPDATE suppliers SET name = $2, name_key = $3, phone = $4, email = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, sup.ID, sup.Name, nameKey, sup.Phone, sup.Email)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update supplier: %w", err)
	}
	return nil
}

// Delete remove um fornecedor por ID.
func (r *SupplierRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	return nil
}

// ListByEstablishment lista os fornecedores do estabelecimento em ordem alfabética.
func (r *SupplierRepo) ListByEstablishment(establishmentID string) ([]*entity.Supplier, error) {
	query := `
		SELECT id, establishment_id, name, phone, email, created_at
		FROM suppliers WHERE establishment_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, sup)
	}
	return list, rows.Err()
}
