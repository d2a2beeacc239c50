package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estoquezen/estoque-api/internal/application/auth"
	"github.com/estoquezen/estoque-api/internal/application/collaborator"
	"github.com/estoquezen/estoque-api/internal/application/history"
	"github.com/estoquezen/estoque-api/internal/application/stock"
	"github.com/estoquezen/estoque-api/internal/application/usecase"
	"github.com/estoquezen/estoque-api/internal/domain/entity"
	"github.com/estoquezen/estoque-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC          *auth.UseCase
	EstablishmentUC *usecase.EstablishmentUseCase
	StockUC         *stock.UseCase
	StockReportUC   *stock.ReportUseCase
	CollaboratorUC  *collaborator.UseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	Recorder        *history.Recorder
	HistoryRepo     repository.HistoryRepository
	UserRepo        repository.UserRepository
	JWTSecret       string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (requerem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Establishments
	establishments := protected.Group("/establishments")
	establishmentHandler := NewEstablishmentHandler(deps.EstablishmentUC)
	establishments.Post("/", establishmentHandler.Register)
	establishments.Get("/", establishmentHandler.ListMine)
	establishments.Get("/:id", establishmentHandler.GetByID)

	// Stock (aninhado no estabelecimento para salvar/listar/relatório;
	// mutações por lote ficam em /stock/:id)
	stockHandler := NewStockHandler(deps.StockUC, deps.StockReportUC, deps.UserRepo)
	establishments.Post("/:id/stock", stockHandler.Save)
	establishments.Get("/:id/stock", stockHandler.List)
	establishments.Get("/:id/stock/report",
		RequireRole(entity.RoleAdmin, entity.RoleNutricionista), stockHandler.Report)

	stockGroup := protected.Group("/stock")
	stockGroup.Put("/:id", stockHandler.Update)
	stockGroup.Delete("/:id", stockHandler.Delete)
	stockGroup.Post("/:id/exit", stockHandler.Exit)

	// History
	historyHandler := NewHistoryHandler(deps.Recorder, deps.HistoryRepo)
	establishments.Get("/:id/history", historyHandler.List)

	// Collaborators
	collaboratorHandler := NewCollaboratorHandler(deps.CollaboratorUC)
	establishments.Get("/:id/collaborators", collaboratorHandler.List)
	collaborators := protected.Group("/collaborators")
	collaborators.Post("/", collaboratorHandler.Create)
	collaborators.Post("/:uid/reset-password", collaboratorHandler.ResetPassword)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	establishments.Post("/:id/categories", categoryHandler.Create)
	establishments.Get("/:id/categories", categoryHandler.List)
	categories := protected.Group("/categories")
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	establishments.Post("/:id/suppliers", supplierHandler.Create)
	establishments.Get("/:id/suppliers", supplierHandler.List)
	suppliers := protected.Group("/suppliers")
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)
}
