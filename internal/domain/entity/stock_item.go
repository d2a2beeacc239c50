package entity

import "time"

// Actor identifica quem executou uma mutação (subconjunto de User).
type Actor struct {
	ID   string
	Name string
	Role Role
}

// StockItem representa um lote de estoque de um estabelecimento.
// Dentro de um estabelecimento, a identidade do lote é a tripla
// (Barcode, ExpiryDate, Brand) — é a chave de deduplicação do merge.
type StockItem struct {
	ID              string
	EstablishmentID string
	Name            string
	Category        string
	Brand           string
	Barcode         string
	ExpiryDate      string // data ISO (AAAA-MM-DD); comparada por igualdade exata
	Quantity        int64  // sempre >= 0; entradas somam, saídas subtraem
	DifferentLot    bool   // mesmo código de barras já existe com outra validade/marca (aviso de UI)
	CreatedByID     string
	CreatedByName   string
	CreatedAt       time.Time
	UpdatedByID     string
	UpdatedByName   string
	UpdatedAt       *time.Time
}

// SameLot informa se a tripla (barcode, validade, marca) coincide.
// Lotes sem código de barras nunca casam entre si (política: sem barcode,
// sempre cria-se um lote novo).
func (s *StockItem) SameLot(barcode, expiryDate, brand string) bool {
	if barcode == "" || s.Barcode == "" {
		return false
	}
	return s.Barcode == barcode && s.ExpiryDate == expiryDate && s.Brand == brand
}
