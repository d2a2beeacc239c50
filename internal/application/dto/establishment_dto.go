package dto

import "time"

// RegisterEstablishmentRequest body para POST /api/establishments.
type RegisterEstablishmentRequest struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Resultados possíveis do cadastro de estabelecimento.
const (
	EstablishmentOutcomeNew      = "novo"
	EstablishmentOutcomeExisting = "existente"
)

// RegisterEstablishmentResponse resposta do cadastro. Tipo indica se o CNPJ
// já existia ("existente", o chamador vira admin adicional) ou não ("novo").
type RegisterEstablishmentResponse struct {
	Tipo            string                `json:"tipo"`
	EstablishmentID string                `json:"establishment_id"`
	Establishment   EstablishmentResponse `json:"establishment"`
}

// EstablishmentResponse visão pública de um estabelecimento.
type EstablishmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj"`
	Address   string    `json:"address,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Admins    []string  `json:"admins"`
	CreatedAt time.Time `json:"created_at"`
}

// EstablishmentListResponse listagem de estabelecimentos do usuário.
type EstablishmentListResponse struct {
	Items []EstablishmentResponse `json:"items"`
}
