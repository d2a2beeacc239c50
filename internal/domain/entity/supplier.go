package entity

import "time"

// Supplier fornecedor de um estabelecimento.
// Nome único por estabelecimento (comparação sem acentos/maiúsculas).
type Supplier struct {
	ID              string
	EstablishmentID string
	Name            string
	Phone           string
	Email           string
	CreatedAt       time.Time
}
