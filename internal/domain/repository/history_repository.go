package repository

import "github.com/estoquezen/estoque-api/internal/domain/entity"

// HistoryRepository porto do histórico de estoque. Append-only: não há
// Update nem Delete. CreatedAt é atribuído pelo banco no insert.
type HistoryRepository interface {
	Append(entry *entity.HistoryEntry) error
	// ListByEstablishment devolve as entradas mais recentes primeiro.
	ListByEstablishment(establishmentID string, limit, offset int) ([]*entity.HistoryEntry, error)
}
