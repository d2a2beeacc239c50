package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquezen/estoque-api/internal/application/auth"
	"github.com/estoquezen/estoque-api/internal/application/collaborator"
	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
)

// CollaboratorHandler trata o provisionamento de colaboradores e nutricionistas
// (protegido, só admins).
type CollaboratorHandler struct {
	uc *collaborator.UseCase
}

// NewCollaboratorHandler constrói o handler.
func NewCollaboratorHandler(uc *collaborator.UseCase) *CollaboratorHandler {
	return &CollaboratorHandler{uc: uc}
}

// Create godoc
// @Summary      Provisionar colaborador ou nutricionista
// @Description  Resolve a identidade por CPF (nutricionista) ou email, criando a conta com a
//
//	senha padrão quando necessário, e vincula ao estabelecimento. Idempotente:
//	repetir a chamada devolve o mesmo uid sem duplicar vínculos.
//
// @Tags         collaborators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCollaboratorRequest  true  "name, establishment_id, role (cpf obrigatório para nutricionista)"
// @Success      201   {object}  dto.CreateCollaboratorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/collaborators [post]
func (h *CollaboratorHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CreateCollaboratorRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	role := entity.ParseRole(in.Role)
	if role != entity.RoleColaborador && role != entity.RoleNutricionista {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "role deve ser colaborador ou nutricionista"})
	}
	uid, err := h.uc.Create(c.Context(), userID, collaborator.CreateInput{
		Name:            in.Name,
		CPF:             in.CPF,
		Email:           in.Email,
		Phone:           in.Phone,
		EstablishmentID: in.EstablishmentID,
		Role:            role,
	})
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "apenas admins podem provisionar colaboradores"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estabelecimento não encontrado"})
		}
		if err == domain.ErrEmailAlreadyExists {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "EMAIL_EXISTS", Message: "email já vinculado a outro cadastro"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateCollaboratorResponse{
		Success: true,
		Message: "colaborador vinculado ao estabelecimento",
		UID:     uid,
	})
}

// ResetPassword godoc
// @Summary      Resetar senha de colaborador
// @Description  Força a senha do alvo para a senha padrão. Restrito a admins que compartilham
//
//	estabelecimento com o alvo; reset da própria senha e de outro admin seguem a
//	política configurada.
//
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        uid  path  string  true  "ID do usuário alvo"
// @Success      200  {object}  dto.ResetPasswordResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/collaborators/{uid}/reset-password [post]
func (h *CollaboratorHandler) ResetPassword(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	err := h.uc.ResetPassword(c.Context(), userID, c.Params("uid"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "uid obrigatório"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "reset não autorizado"})
		}
		if err == domain.ErrNotFound || err == domain.ErrUserNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "usuário não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ResetPasswordResponse{Success: true, Message: "senha redefinida para a senha padrão"})
}

// List godoc
// @Summary      Listar usuários do estabelecimento
// @Description  Inclui colaboradores vinculados pelo set de estabelecimentos e nutricionistas
//
//	vinculados pela tabela de vínculos.
//
// @Tags         collaborators
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do estabelecimento"
// @Success      200  {object}  dto.CollaboratorListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/establishments/{id}/collaborators [get]
func (h *CollaboratorHandler) List(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	users, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estabelecimento obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.CollaboratorListResponse{Items: make([]dto.UserResponse, 0, len(users))}
	for _, u := range users {
		out.Items = append(out.Items, *auth.ToUserResponse(u))
	}
	return c.JSON(out)
}
