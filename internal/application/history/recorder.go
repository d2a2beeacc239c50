package history

import (
	"encoding/json"
	"fmt"

	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// Recorder grava registros de auditoria do estoque. Cada mutação de lote
// produz exatamente uma entrada; o repositório é append-only e o CreatedAt
// vem do servidor de banco. O repositório é passado por chamada para que o
// registro participe da mesma transação da mutação primária.
type Recorder struct{}

// NewRecorder constrói o gravador de histórico.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Record normaliza o ator (nome cai para "Sistema" quando ausente), serializa
// o payload e acrescenta a entrada ao histórico do estabelecimento.
func (r *Recorder) Record(repo repository.HistoryRepository, establishmentID, action string, payload any, actor entity.Actor) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar payload do histórico: %w", err)
	}
	name := actor.Name
	if name == "" {
		name = entity.ActorNameFallback
	}
	entry := &entity.HistoryEntry{
		EstablishmentID: establishmentID,
		Action:          action,
		Payload:         raw,
		ActorID:         actor.ID,
		ActorName:       name,
		ActorRole:       actor.Role,
	}
	return repo.Append(entry)
}

// List devolve o histórico do estabelecimento, mais recentes primeiro.
func (r *Recorder) List(repo repository.HistoryRepository, establishmentID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	return repo.ListByEstablishment(establishmentID, limit, offset)
}
