package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/application/usecase"
	"github.com/estoquezen/estoque-api/internal/domain"
)

// EstablishmentHandler trata cadastro e listagem de estabelecimentos (protegido).
type EstablishmentHandler struct {
	uc *usecase.EstablishmentUseCase
}

// NewEstablishmentHandler constrói o handler.
func NewEstablishmentHandler(uc *usecase.EstablishmentUseCase) *EstablishmentHandler {
	return &EstablishmentHandler{uc: uc}
}

// Register godoc
// @Summary      Cadastrar ou associar estabelecimento
// @Description  CNPJ já existente associa o chamador como admin adicional (tipo "existente");
//
//	CNPJ novo cria o estabelecimento (tipo "novo").
//
// @Tags         establishments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterEstablishmentRequest  true  "name, cnpj (address e phone opcionais)"
// @Success      201   {object}  dto.RegisterEstablishmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/establishments [post]
func (h *EstablishmentHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterEstablishmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	out, err := h.uc.Register(c.Context(), userID, in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nome e cnpj são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMine godoc
// @Summary      Listar estabelecimentos do usuário
// @Tags         establishments
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.EstablishmentListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/establishments [get]
func (h *EstablishmentHandler) ListMine(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.ListMine(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalhar estabelecimento
// @Tags         establishments
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do estabelecimento"
// @Success      200  {object}  dto.EstablishmentResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/establishments/{id} [get]
func (h *EstablishmentHandler) GetByID(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	out, err := h.uc.GetByID(c.Context(), userID, c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estabelecimento não encontrado"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acesso negado ao estabelecimento"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
