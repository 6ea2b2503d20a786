package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kayacantekin/aidpanel/internal/apiclient"
	"github.com/kayacantekin/aidpanel/internal/config"
	"github.com/kayacantekin/aidpanel/internal/engine"
	"github.com/kayacantekin/aidpanel/internal/fixture"
	"github.com/kayacantekin/aidpanel/internal/handler"
	"github.com/kayacantekin/aidpanel/internal/observability"
	"github.com/kayacantekin/aidpanel/internal/service"
	"github.com/kayacantekin/aidpanel/internal/tokenstore"
	"github.com/kayacantekin/aidpanel/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("aidpanel exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()
	fixtures := fixture.NewProvider()

	var tokens tokenstore.Store
	switch cfg.TokenStoreBackend {
	case "memory":
		tokens = tokenstore.NewMemoryStore()
	default:
		tokens = tokenstore.NewKeyringStore()
	}

	client, err := apiclient.New(apiclient.ClientConfig{
		BaseURL:        cfg.APIBaseURL,
		ForceSynthetic: cfg.ForceSynthetic,
		Timeout:        cfg.RequestTimeout(),
		RetryAttempts:  cfg.RetryAttempts,
		RetryDelay:     cfg.RetryDelay(),
		Fixtures:       fixtures,
		Tokens:         tokens,
		Logger:         logger,
		Metrics:        metrics,
	})
	if err != nil {
		return fmt.Errorf("api client initialization failed: %w", err)
	}

	registry, err := service.NewRegistry(client, fixtures, logger)
	if err != nil {
		return fmt.Errorf("service registry initialization failed: %w", err)
	}
	tasks, err := service.NewTaskService(client, fixtures, logger)
	if err != nil {
		return fmt.Errorf("task service initialization failed: %w", err)
	}

	settings := cfg.DefaultNotificationSettings()
	eng, err := engine.New(engine.Config{
		Settings: settings,
		Toaster:  engine.NewLogToaster(logger, engine.DefaultToastConfig()),
		Sounder:  engine.NewLogSounder(logger),
		Logger:   logger,
		Metrics:  metrics,
	})
	if err != nil {
		return fmt.Errorf("notification engine initialization failed: %w", err)
	}
	defer eng.Close()

	scanner, err := engine.NewDeadlineScanner(eng, tasks, cfg.DeadlineScanInterval(), logger, metrics)
	if err != nil {
		return fmt.Errorf("deadline scanner initialization failed: %w", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "aidpanel",
		DisableStartupMessage: true,
		ErrorHandler:          transport.ErrorHandler(logger),
	})
	app.Use(metrics.HTTPMiddleware())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	handler.RegisterHealthRoutes(app, client.Synthetic())
	if err := handler.RegisterNotificationRoutes(app, eng); err != nil {
		return fmt.Errorf("notification route registration failed: %w", err)
	}
	if err := handler.RegisterResourceRoutes(app, registry); err != nil {
		return fmt.Errorf("resource route registration failed: %w", err)
	}

	logger.Info("aidpanel started",
		zap.Int("port", cfg.APIPort),
		zap.Bool("synthetic", client.Synthetic()),
		zap.Duration("deadlineScanInterval", cfg.DeadlineScanInterval()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scanner.Start(gctx)
	})

	g.Go(func() error {
		if err := app.Listen(fmt.Sprintf(":%d", cfg.APIPort)); err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
