package entity

import (
	"encoding/json"
	"time"
)

// Ações registradas no histórico de estoque. Os valores são os mesmos
// gravados no banco e exibidos na UI.
const (
	HistoryAdded          = "adicionado"
	HistoryEdited         = "editado"
	HistoryDeleted        = "excluido"
	HistoryExit           = "saida"
	HistoryQuantitySummed = "quantidade_somada"
)

// ActorNameFallback nome usado quando a mutação não tem usuário associado.
const ActorNameFallback = "Sistema"

// HistoryEntry registro imutável de uma mutação de estoque. Append-only:
// nunca é atualizado nem removido. CreatedAt é atribuído pelo servidor de
// banco (now()), nunca pelo relógio do cliente.
type HistoryEntry struct {
	ID              string
	EstablishmentID string
	Action          string
	Payload         json.RawMessage // antes/depois ou delta, conforme a ação
	ActorID         string
	ActorName       string
	ActorRole       Role
	CreatedAt       time.Time
}
