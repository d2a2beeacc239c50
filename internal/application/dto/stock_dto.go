package dto

import "time"

// SaveStockItemRequest body para POST /api/establishments/{id}/stock.
// O motor decide entre somar em um lote existente ou criar um lote novo.
type SaveStockItemRequest struct {
	Name       string `json:"name"`
	Barcode    string `json:"barcode,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"` // AAAA-MM-DD
	Quantity   int64  `json:"quantity"`
	Category   string `json:"category,omitempty"`
	Brand      string `json:"brand,omitempty"`
}

// Resultados possíveis do salvamento inteligente.
const (
	StockOutcomeMerged  = "somado"
	StockOutcomeCreated = "novo"
)

// SaveStockItemResponse resposta do salvamento inteligente.
type SaveStockItemResponse struct {
	Tipo         string `json:"tipo"` // "somado" | "novo"
	ID           string `json:"id"`
	DifferentLot bool   `json:"different_lot,omitempty"`
}

// UpdateStockItemRequest body para PUT /api/stock/{id}. EstablishmentID
// delimita o escopo: lote de outro estabelecimento responde 404.
type UpdateStockItemRequest struct {
	EstablishmentID string `json:"establishment_id"`
	Name            string `json:"name"`
	ExpiryDate      string `json:"expiry_date,omitempty"`
	Quantity        int64  `json:"quantity"`
	Category        string `json:"category,omitempty"`
	Brand           string `json:"brand,omitempty"`
}

// StockExitRequest body para POST /api/stock/{id}/exit. Quantity omitida vale 1.
type StockExitRequest struct {
	EstablishmentID string `json:"establishment_id"`
	Quantity        int64  `json:"quantity,omitempty"`
}

// StockExitResponse resposta da saída de estoque.
type StockExitResponse struct {
	ID       string `json:"id"`
	Before   int64  `json:"before"`
	After    int64  `json:"after"`
	Quantity int64  `json:"quantity"`
}

// StockItemResponse visão pública de um lote.
type StockItemResponse struct {
	ID              string     `json:"id"`
	EstablishmentID string     `json:"establishment_id"`
	Name            string     `json:"name"`
	Category        string     `json:"category,omitempty"`
	Brand           string     `json:"brand,omitempty"`
	Barcode         string     `json:"barcode,omitempty"`
	ExpiryDate      string     `json:"expiry_date,omitempty"`
	Quantity        int64      `json:"quantity"`
	DifferentLot    bool       `json:"different_lot,omitempty"`
	CreatedBy       string     `json:"created_by,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedBy       string     `json:"updated_by,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

// StockListResponse listagem de lotes de um estabelecimento.
type StockListResponse struct {
	Items []StockItemResponse `json:"items"`
}
