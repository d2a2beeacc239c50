package dto

import "time"

// CreateCategoryRequest body para POST /api/establishments/{id}/categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse visão pública de uma categoria.
type CategoryResponse struct {
	ID              string    `json:"id"`
	EstablishmentID string    `json:"establishment_id"`
	Name            string    `json:"name"`
	CreatedAt       time.Time `json:"created_at"`
}

// CategoryListResponse listagem de categorias.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
}

// CreateSupplierRequest body para POST /api/establishments/{id}/suppliers.
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// SupplierResponse visão pública de um fornecedor.
type SupplierResponse struct {
	ID              string    `json:"id"`
	EstablishmentID string    `json:"establishment_id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// SupplierListResponse listagem de fornecedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
}
