package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementação de StockItemRepository sobre PostgreSQL
// (usável com pool ou tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `
	id, establishment_id, name, category, brand, barcode, expiry_date,
	quantity, different_lot, created_by_id, created_by_name, created_at,
	updated_by_id, updated_by_name, updated_at`

func scanStockItem(row pgx.Row) (*entity.StockItem, error) {
	var s entity.StockItem
	err := row.Scan(
		&s.ID, &s.EstablishmentID, &s.Name, &s.Category, &s.Brand, &s.Barcode,
		&s.ExpiryDate, &s.Quantity, &s.DifferentLot, &s.CreatedByID,
		&s.CreatedByName, &s.CreatedAt, &s.UpdatedByID, &s.UpdatedByName,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste um lote novo.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (
			id, establishment_id, name, category, brand, barcode, expiry_date,
			quantity, different_lot, created_by_id, created_by_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.EstablishmentID, item.Name, item.Category, item.Brand,
		item.Barcode, item.ExpiryDate, item.Quantity, item.DifferentLot,
		item.CreatedByID, item.CreatedByName, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}
	return nil
}

// GetByID obtém um lote por ID.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}
	return item, nil
}

// GetForUpdate obtém o lote e bloqueia a linha (SELECT FOR UPDATE).
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock item for update: %w", err)
	}
	return item, nil
}

// FindLotForUpdate localiza e bloqueia o lote exato pela tripla
// (barcode, validade, marca). nil se não existir.
func (r *StockItemRepo) FindLotForUpdate(establishmentID, barcode, expiryDate, brand string) (*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + `
		FROM stock_items
		WHERE establishment_id = $1 AND barcode = $2 AND expiry_date = $3 AND brand = $4
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE`
	item, err := scanStockItem(r.q.QueryRow(context.Background(), query, establishmentID, barcode, expiryDate, brand))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find lot for update: %w", err)
	}
	return item, nil
}

// HasOtherLotWithBarcode informa se existe lote com o mesmo código de barras
// mas validade ou marca diferentes.
func (r *StockItemRepo) HasOtherLotWithBarcode(establishmentID, barcode, expiryDate, brand string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_items
			WHERE establishment_id = $1 AND barcode = $2
			  AND (expiry_date <> $3 OR brand <> $4)
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, establishmentID, barcode, expiryDate, brand).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check other lot with barcode: %w", err)
	}
	return exists, nil
}

// Update grava os campos mutáveis do lote.
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET
			name = $2, category = $3, brand = $4, barcode = $5, expiry_date = $6,
			quantity = $7, different_lot = $8, updated_by_id = $9,
			updated_by_name = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Category, item.Brand, item.Barcode,
		item.ExpiryDate, item.Quantity, item.DifferentLot, item.UpdatedByID,
		item.UpdatedByName, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	return nil
}

// Delete remove um lote por ID.
func (r *StockItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	return nil
}

// ListByEstablishment lista os lotes do estabelecimento.
func (r *StockItemRepo) ListByEstablishment(establishmentID string) ([]*entity.StockItem, error) {
	query := `SELECT` + stockItemColumns + `
		FROM stock_items WHERE establishment_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, establishmentID)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockItem
	for rows.Next() {
		item, err := scanStockItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}
