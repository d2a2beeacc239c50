package dto

// CreateCollaboratorRequest body para POST /api/collaborators.
// Role aceita tanto os valores em português ("colaborador", "nutricionista")
// quanto os equivalentes em inglês; a reconciliação acontece na borda.
type CreateCollaboratorRequest struct {
	Name            string `json:"name"`
	CPF             string `json:"cpf,omitempty"`
	Email           string `json:"email,omitempty"`
	Phone           string `json:"phone,omitempty"`
	EstablishmentID string `json:"establishment_id"`
	Role            string `json:"role"`
}

// CreateCollaboratorResponse resposta do provisionamento.
type CreateCollaboratorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UID     string `json:"uid"`
}

// ResetPasswordResponse resposta do reset de senha.
type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CollaboratorListResponse usuários vinculados a um estabelecimento.
type CollaboratorListResponse struct {
	Items []UserResponse `json:"items"`
}
