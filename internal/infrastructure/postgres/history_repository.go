package postgres

import (
	"context"
	"fmt"

	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

// HistoryRepo implementação append-only do histórico de estoque sobre
// PostgreSQL (usável com pool ou tx). Não há Update nem Delete.
type HistoryRepo struct {
	q Querier
}

// NewHistoryRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewHistoryRepository(q Querier) *HistoryRepo {
	return &HistoryRepo{q: q}
}

// Append acrescenta uma entrada. id e created_at são atribuídos pelo banco
// (gen_random_uuid() e now()) — o relógio do cliente nunca entra na ordenação.
func (r *HistoryRepo) Append(entry *entity.HistoryEntry) error {
	query := `
		INSERT INTO stock_history (establishment_id, action, payload, actor_id, actor_name, actor_role)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		entry.EstablishmentID, entry.Action, entry.Payload,
		entry.ActorID, entry.ActorName, string(entry.ActorRole),
	)
	if err != nil {
		return fmt.Errorf("append history: %w", err)
	}
	return nil
}

// ListByEstablishment devolve as entradas mais recentes primeiro.
func (r *HistoryRepo) ListByEstablishment(establishmentID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	query := `
		SELECT id, establishment_id, action, payload, actor_id, actor_name, actor_role, created_at
		FROM stock_history
		WHERE establishment_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, establishmentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()
	var list []*entity.HistoryEntry
	for rows.Next() {
		var e entity.HistoryEntry
		var role string
		if err := rows.Scan(&e.ID, &e.EstablishmentID, &e.Action, &e.Payload, &e.ActorID, &e.ActorName, &role, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.ActorRole = entity.Role(role)
		list = append(list, &e)
	}
	return list, rows.Err()
}
