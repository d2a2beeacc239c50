package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/estoquezen/estoque-api/internal/application/auth"
	"github.com/estoquezen/estoque-api/internal/application/collaborator"
	"github.com/estoquezen/estoque-api/internal/application/history"
	"github.com/estoquezen/estoque-api/internal/application/stock"
	"github.com/estoquezen/estoque-api/internal/application/usecase"
	infrapdf "github.com/estoquezen/estoque-api/internal/infrastructure/pdf"
	"github.com/estoquezen/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/estoquezen/estoque-api/internal/interfaces/http"
	"github.com/estoquezen/estoque-api/pkg/config"
	"github.com/estoquezen/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	estRepo := postgres.NewEstablishmentRepository(pool)
	itemRepo := postgres.NewStockItemRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	linkRepo := postgres.NewNutritionistLinkRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := history.NewRecorder()
	stockUC := stock.NewUseCase(txRunner, itemRepo, recorder)
	pdfGenerator := infrapdf.NewStockReportGenerator()
	stockReportUC := stock.NewReportUseCase(itemRepo, estRepo, pdfGenerator)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	identity := auth.NewIdentityAdapter(userRepo)
	collaboratorUC := collaborator.NewUseCase(userRepo, estRepo, linkRepo, identity, collaborator.Policy{
		DefaultPassword:       cfg.Provision.DefaultPassword,
		AllowSelfReset:        cfg.Provision.AllowSelfReset,
		AllowAdminTargetReset: cfg.Provision.AllowAdminTargetReset,
	})
	establishmentUC := usecase.NewEstablishmentUseCase(estRepo, userRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EstoqueZen API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:          authUC,
		EstablishmentUC: establishmentUC,
		StockUC:         stockUC,
		StockReportUC:   stockReportUC,
		CollaboratorUC:  collaboratorUC,
		CategoryUC:      categoryUC,
		SupplierUC:      supplierUC,
		Recorder:        recorder,
		HistoryRepo:     historyRepo,
		UserRepo:        userRepo,
		JWTSecret:       cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação finalizada")
}
