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

	"github.com/kosman/kosman-api/internal/application/auth"
	"github.com/kosman/kosman-api/internal/application/usecase"
	infrapdf "github.com/kosman/kosman-api/internal/infrastructure/pdf"
	"github.com/kosman/kosman-api/internal/infrastructure/postgres"
	"github.com/kosman/kosman-api/internal/infrastructure/storage"
	httpRouter "github.com/kosman/kosman-api/internal/interfaces/http"
	"github.com/kosman/kosman-api/pkg/clock"
	"github.com/kosman/kosman-api/pkg/config"
	"github.com/kosman/kosman-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("ensure schema")
	}

	clk := clock.System{}

	roomRepo := postgres.NewRoomRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	rentalRepo := postgres.NewRentalRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	maintenanceRepo := postgres.NewMaintenanceRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	proofStore, err := storage.NewLocalProofStore(cfg.Upload.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("proof storage")
	}
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator(cfg.App.Name)

	roomUC := usecase.NewRoomUseCase(roomRepo, rentalRepo, clk)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, rentalRepo, clk)
	rentalUC := usecase.NewRentalUseCase(txRunner, rentalRepo, roomRepo, tenantRepo, clk)
	billingUC := usecase.NewBillingUseCase(txRunner, billRepo, rentalRepo, roomRepo, tenantRepo, proofStore, clk)
	receiptUC := usecase.NewReceiptUseCase(billRepo, rentalRepo, tenantRepo, roomRepo, receiptGenerator)
	ledgerUC := usecase.NewLedgerUseCase(transactionRepo, clk)
	maintenanceUC := usecase.NewMaintenanceUseCase(txRunner, maintenanceRepo, roomRepo, clk)
	dashboardUC := usecase.NewDashboardUseCase(roomRepo, billRepo, rentalRepo, tenantRepo, maintenanceRepo, transactionRepo, clk)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, clk)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI locally: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kosman API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		RoomUC:        roomUC,
		TenantUC:      tenantUC,
		RentalUC:      rentalUC,
		BillingUC:     billingUC,
		ReceiptUC:     receiptUC,
		LedgerUC:      ledgerUC,
		MaintenanceUC: maintenanceUC,
		DashboardUC:   dashboardUC,
		AuthUC:        authUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
