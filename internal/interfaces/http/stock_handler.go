package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/application/stock"
	"github.com/estoquezen/estoque-api/internal/domain"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// StockHandler trata as mutações e listagens de estoque (protegido).
type StockHandler struct {
	uc       *stock.UseCase
	report   *stock.ReportUseCase
	userRepo repository.UserRepository
}

// NewStockHandler constrói o handler.
func NewStockHandler(uc *stock.UseCase, report *stock.ReportUseCase, userRepo repository.UserRepository) *StockHandler {
	return &StockHandler{uc: uc, report: report, userRepo: userRepo}
}

// actor resolve o ator da mutação a partir do token. O nome vem do cadastro;
// usuário inexistente vira ator sem nome (o histórico grava "Sistema").
func (h *StockHandler) actor(c *fiber.Ctx) entity.Actor {
	actor := entity.Actor{ID: GetUserID(c), Role: entity.Role(GetRole(c))}
	user, err := h.userRepo.GetByID(actor.ID)
	if err == nil && user != nil {
		actor.Name = user.Name
	}
	return actor
}

// Save godoc
// @Summary      Salvar item de estoque (salvamento inteligente)
// @Description  Lote com a mesma tripla (código de barras, validade, marca) soma a quantidade
//
//	(tipo "somado"); caso contrário cria um lote novo (tipo "novo"), marcando
//	different_lot quando o mesmo código de barras já existe com outra validade ou marca.
//	Itens sem código de barras sempre criam lote novo.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID do estabelecimento"
// @Param        body  body  dto.SaveStockItemRequest true  "name, quantity (barcode, expiry_date, category, brand opcionais)"
// @Success      201   {object}  dto.SaveStockItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/establishments/{id}/stock [post]
func (h *StockHandler) Save(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SaveStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	draft := stock.ItemDraft{
		Name:       in.Name,
		Barcode:    in.Barcode,
		ExpiryDate: in.ExpiryDate,
		Quantity:   in.Quantity,
		Category:   in.Category,
		Brand:      in.Brand,
	}
	result, err := h.uc.SaveSmart(c.Context(), c.Params("id"), draft, h.actor(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name e quantity (> 0) são obrigatórios"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaveStockItemResponse{
		Tipo:         result.Outcome,
		ID:           result.ItemID,
		DifferentLot: result.DifferentLot,
	})
}

// List godoc
// @Summary      Listar lotes do estabelecimento
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do estabelecimento"
// @Success      200  {object}  dto.StockListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/establishments/{id}/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	items, err := h.uc.List(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "estabelecimento obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.StockListResponse{Items: make([]dto.StockItemResponse, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, toStockItemResponse(it))
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar lote
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID do lote"
// @Param        body  body  dto.UpdateStockItemRequest true  "establishment_id, name, quantity e demais campos"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [put]
func (h *StockHandler) Update(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.UpdateStockItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	changes := stock.ItemChanges{
		Name:       in.Name,
		ExpiryDate: in.ExpiryDate,
		Quantity:   in.Quantity,
		Category:   in.Category,
		Brand:      in.Brand,
	}
	err := h.uc.Edit(c.Context(), in.EstablishmentID, c.Params("id"), changes, h.actor(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "lote atualizado"})
}

// Delete godoc
// @Summary      Excluir lote
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id                path   string  true  "ID do lote"
// @Param        establishment_id  query  string  true  "ID do estabelecimento"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{id} [delete]
func (h *StockHandler) Delete(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	err := h.uc.Delete(c.Context(), c.Query("establishment_id"), c.Params("id"), h.actor(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "lote excluído"})
}

// Exit godoc
// @Summary      Registrar saída de estoque
// @Description  Decrementa a quantidade do lote. Quantity omitida vale 1; quantidade maior
//
//	que a disponível responde 409.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID do lote"
// @Param        body  body  dto.StockExitRequest  true  "establishment_id (quantity opcional)"
// @Success      200   {object}  dto.StockExitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/{id}/exit [post]
func (h *StockHandler) Exit(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.StockExitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	result, err := h.uc.Exit(c.Context(), in.EstablishmentID, c.Params("id"), in.Quantity, h.actor(c))
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "dados inválidos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote não encontrado"})
		}
		if err == domain.ErrInsufficientStock {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "quantidade insuficiente em estoque"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockExitResponse{
		ID:       result.ItemID,
		Before:   result.Before,
		After:    result.After,
		Quantity: result.Quantity,
	})
}

// Report godoc
// @Summary      Relatório de estoque em PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID do estabelecimento"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/establishments/{id}/stock/report [get]
func (h *StockHandler) Report(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	pdfBytes, err := h.report.Generate(c.Context(), c.Params("id"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "estabelecimento não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="relatorio-estoque.pdf"`)
	return c.Send(pdfBytes)
}

func toStockItemResponse(it *entity.StockItem) dto.StockItemResponse {
	return dto.StockItemResponse{
		ID:              it.ID,
		EstablishmentID: it.EstablishmentID,
		Name:            it.Name,
		Category:        it.Category,
		Brand:           it.Brand,
		Barcode:         it.Barcode,
		ExpiryDate:      it.ExpiryDate,
		Quantity:        it.Quantity,
		DifferentLot:    it.DifferentLot,
		CreatedBy:       it.CreatedByName,
		CreatedAt:       it.CreatedAt,
		UpdatedBy:       it.UpdatedByName,
		UpdatedAt:       it.UpdatedAt,
	}
}
