package entity

import "time"

// Category categoria de itens de estoque, escopada por estabelecimento.
// Nome único por estabelecimento (comparação sem acentos/maiúsculas).
type Category struct {
	ID              string
	EstablishmentID string
	Name            string
	CreatedAt       time.Time
}
