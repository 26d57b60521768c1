package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/inventario-ai/docs"
	"github.com/jhoicas/inventario-ai/internal/application/assistant"
	"github.com/jhoicas/inventario-ai/internal/application/ports"
	"github.com/jhoicas/inventario-ai/internal/application/usecase"
	"github.com/jhoicas/inventario-ai/internal/domain/repository"
	infraai "github.com/jhoicas/inventario-ai/internal/infrastructure/ai"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/memory"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/inventario-ai/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/inventario-ai/internal/infrastructure/redis"
	"github.com/jhoicas/inventario-ai/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/inventario-ai/internal/interfaces/http"
	"github.com/jhoicas/inventario-ai/pkg/config"
	"github.com/jhoicas/inventario-ai/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Str("llm", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()
	startedAt := time.Now()

	// Almacén de inventario
	var (
		itemRepo repository.ItemRepository
		txRunner repository.TxRunner
	)
	switch cfg.DB.Driver {
	case "memory":
		repo := memory.NewItemRepository()
		itemRepo, txRunner = repo, memory.NewTxRunner(repo)
		log.Warn().Msg("almacén en memoria: los datos no sobreviven reinicios")
	default:
		if cfg.DB.Migrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), log); err != nil {
				log.Fatal().Err(err).Msg("migraciones de PostgreSQL")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		itemRepo, txRunner = postgres.NewItemRepository(pool), postgres.NewTxRunner(pool)
	}

	// Memoria conversacional
	var transcripts ports.TranscriptStore
	if cfg.Redis.Addr != "" {
		client, err := infraredis.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		transcripts = infraredis.NewTranscriptStore(client, cfg.Memory.Window, cfg.Redis.TranscriptTTL)
	} else {
		transcripts = memory.NewTranscriptStore(cfg.Memory.Window)
	}

	prom := metrics.New()
	llm := infraai.NewChatModel(cfg.AI)
	formatter := assistant.NewFormatter(cfg.App.CurrencySymbol)
	executor := assistant.NewExecutor(itemRepo, txRunner, formatter, prom, log)
	orchestrator := assistant.NewOrchestrator(llm, transcripts, executor, prom, log, assistant.Options{
		Timeout: cfg.AI.Timeout,
		Window:  cfg.Memory.Window,
	})

	itemUC := usecase.NewItemUseCase(itemRepo)
	reportUC := usecase.NewReportUseCase(itemRepo, infrapdf.NewStockReportGenerator(), cfg.App.CurrencySymbol)

	if cfg.Jobs.LowStockInterval > 0 {
		watcher, err := scheduler.NewLowStockWatcher(itemRepo, prom, log, cfg.Jobs.LowStockInterval)
		if err != nil {
			log.Fatal().Err(err).Msg("programar revisión de existencias")
		}
		watcher.Start()
		defer func() {
			if err := watcher.Stop(); err != nil {
				log.Error().Err(err).Msg("detener scheduler")
			}
		}()
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout + time.Second*10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, " + httpRouter.SessionHeader,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario AI API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Orchestrator: orchestrator,
		ItemUC:       itemUC,
		ReportUC:     reportUC,
		Metrics:      prom.Handler(),
		StoreDriver:  cfg.DB.Driver,
		StartedAt:    startedAt,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
