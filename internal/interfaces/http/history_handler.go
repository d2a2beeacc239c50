package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquezen/estoque-api/internal/application/dto"
	"github.com/estoquezen/estoque-api/internal/application/history"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// HistoryHandler trata a consulta do histórico de estoque (protegido).
type HistoryHandler struct {
	recorder *history.Recorder
	repo     repository.HistoryRepository
}

// NewHistoryHandler constrói o handler.
func NewHistoryHandler(recorder *history.Recorder, repo repository.HistoryRepository) *HistoryHandler {
	return &HistoryHandler{recorder: recorder, repo: repo}
}

// List godoc
// @Summary      Histórico de movimentações do estabelecimento
// @Description  Entradas mais recentes primeiro, paginadas por limit/offset.
// @Tags         history
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID do estabelecimento"
// @Param        limit   query  int     false  "Tamanho da página (padrão 20, máx 100)"
// @Param        offset  query  int     false  "Deslocamento (padrão 0)"
// @Success      200  {object}  dto.HistoryListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/establishments/{id}/history [get]
func (h *HistoryHandler) List(c *fiber.Ctx) error {
	if GetUserID(c) == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginação inválida"})
	}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}

	entries, err := h.recorder.List(h.repo, c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.HistoryListResponse{
		Items: make([]dto.HistoryEntryResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range entries {
		out.Items = append(out.Items, dto.HistoryEntryResponse{
			ID:      e.ID,
			Action:  e.Action,
			Payload: e.Payload,
			Actor: dto.HistoryActorResponse{
				ID:   e.ActorID,
				Name: e.ActorName,
				Role: e.ActorRole.String(),
			},
			CreatedAt: e.CreatedAt,
		})
	}
	return c.JSON(out)
}
