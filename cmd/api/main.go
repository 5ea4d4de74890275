package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campotec/campotec-api/internal/application/auth"
	"github.com/campotec/campotec-api/internal/application/ledger"
	appscope "github.com/campotec/campotec-api/internal/application/scope"
	"github.com/campotec/campotec-api/internal/application/usecase"
	"github.com/campotec/campotec-api/internal/infrastructure/postgres"
	httpRouter "github.com/campotec/campotec-api/internal/interfaces/http"
	"github.com/campotec/campotec-api/pkg/config"
	"github.com/campotec/campotec-api/pkg/logger"
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

	if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migrações do banco")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	unitRepo := postgres.NewSerializedUnitRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	orderRepo := postgres.NewServiceOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := ledger.NewUseCase(txRunner, branchRepo)
	scopeUC := appscope.NewUseCase(userRepo, branchRepo, technicianRepo, employeeRepo, teamRepo)
	productUC := usecase.NewProductUseCase(productRepo, movementRepo, branchRepo)
	unitUC := usecase.NewSerializedUnitUseCase(unitRepo, productRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	orderUC := usecase.NewServiceOrderUseCase(orderRepo, productRepo, ledgerUC)
	authUC := auth.NewUseCase(userRepo, branchRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ScopeUC:        scopeUC,
		LedgerUC:       ledgerUC,
		ProductUC:      productUC,
		UnitUC:         unitUC,
		BranchUC:       branchUC,
		ServiceOrderUC: orderUC,
		JWTSecret:      cfg.JWT.Secret,
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
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação parada")
}

// runMigrations aplica as migrações goose pendentes antes de abrir o pool.
func runMigrations(dsn string) error {
	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	return goose.Up(db, "migrations")
}
