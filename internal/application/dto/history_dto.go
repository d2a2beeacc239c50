package dto

import (
	"encoding/json"
	"time"
)

// HistoryActorResponse ator normalizado de uma entrada de histórico.
type HistoryActorResponse struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// HistoryEntryResponse entrada do histórico de estoque.
type HistoryEntryResponse struct {
	ID        string               `json:"id"`
	Action    string               `json:"action"`
	Payload   json.RawMessage      `json:"payload"`
	Actor     HistoryActorResponse `json:"actor"`
	CreatedAt time.Time            `json:"created_at"`
}

// HistoryListResponse listagem do histórico, mais recentes primeiro.
type HistoryListResponse struct {
	Items []HistoryEntryResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}
