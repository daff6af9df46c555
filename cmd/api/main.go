package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/TPBCanada/InventoryApp-sub000/internal/application/balance"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/ledger"
	"github.com/TPBCanada/InventoryApp-sub000/internal/application/reconcile"
	"github.com/TPBCanada/InventoryApp-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/TPBCanada/InventoryApp-sub000/internal/interfaces/http"
	"github.com/TPBCanada/InventoryApp-sub000/pkg/config"
	"github.com/TPBCanada/InventoryApp-sub000/pkg/logger"
	"github.com/TPBCanada/InventoryApp-sub000/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("esquema al día")
	}

	registry := prometheus.NewRegistry()
	invMetrics := metrics.NewInventoryMetrics(registry)

	movementRepo := postgres.NewMovementRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	skuRepo := postgres.NewSKURepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	reconRepo := postgres.NewReconciliationRepository(pool)
	txRunner := postgres.NewTxRunner(pool, cfg.DB.LockTimeout)

	engine := ledger.NewEngine(txRunner, skuRepo, locationRepo, invMetrics)

	// Estrategia de saldo acumulado según capacidad del motor de almacenamiento
	var strategy balance.Strategy
	if cfg.DB.WindowFunctions {
		strategy = balance.NewWindowStrategy(postgres.NewBalanceRepository(pool))
	} else {
		strategy = balance.NewAccumulateStrategy(movementRepo)
	}
	log.Info().Bool("window_functions", cfg.DB.WindowFunctions).Msg("estrategia de saldo acumulado")
	balanceSvc := balance.NewService(strategy, skuRepo)

	reconcileSvc := reconcile.NewService(reconRepo, txRunner, invMetrics)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Ledger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Engine:       engine,
		Balance:      balanceSvc,
		Reconcile:    reconcileSvc,
		Snapshots:    snapshotRepo,
		SKURepo:      skuRepo,
		LocationRepo: locationRepo,
	})

	// Detección periódica de deriva (desactivada con intervalo 0)
	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()
	scheduler := reconcile.NewScheduler(reconcileSvc, cfg.Reconcile.Interval, log.Component("reconcile"))
	go scheduler.Run(schedulerCtx)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stopScheduler()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
