package entity

import "time"

// NutritionistLink vínculo N:N entre nutricionista e estabelecimento.
// Único por par (NutritionistID, EstablishmentID).
type NutritionistLink struct {
	ID              string
	NutritionistID  string
	EstablishmentID string
	Active          bool
	CreatedAt       time.Time
}
