package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"inventory/internal/apperrors"
	"inventory/internal/config"
	"inventory/internal/handlers"
	"inventory/internal/logging"
	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/pkg/rabbitmq"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("inventory: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flush, err := logging.Setup(logging.Options{Mode: cfg.LogMode, Filename: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer flush()

	app, cleanup, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		zap.L().Info("starting server", zap.String("port", cfg.AppPort))
		if err := app.Listen(cfg.AppPort); err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown the HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		zap.L().Info("shutting down server")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	zap.L().Info("server gracefully stopped")
	return nil
}

// NewApp wires the product store, the optional RabbitMQ transport, the
// service and the HTTP routes. The returned cleanup releases the store and
// broker connections.
func NewApp(cfg *config.Config) (*fiber.App, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// --- Initialize Repository ---
	productRepo, db, err := repositories.NewProductRepository(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	if db != nil {
		closers = append(closers, func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					zap.L().Warn("error closing database", zap.Error(err))
				}
			}
		})
	}
	if err := productRepo.Initialize(); err != nil {
		cleanup()
		return nil, nil, err
	}

	// --- Initialize RabbitMQ Client ---
	var (
		mqClient  *rabbitmq.Client
		publisher services.EventPublisher
	)
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		closers = append(closers, func() {
			if err := mqClient.Close(); err != nil {
				zap.L().Warn("error closing RabbitMQ client", zap.Error(err))
			}
		})
		publisher = mqClient
	}

	// --- Initialize Service and Handlers ---
	productService := services.NewProductService(productRepo, publisher)
	productHandler := handlers.NewProductHandler(productService)

	if mqClient != nil {
		if err := mqClient.ConsumeStockAdjustments(stockAdjustmentHandler(productService)); err != nil {
			cleanup()
			return nil, nil, err
		}
	}

	// --- Initialize Fiber App ---
	app := fiber.New(fiber.Config{
		AppName:      "inventory",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := app.Group("/api")
	productHandler.RegisterRoutes(api)

	return app, cleanup, nil
}

// stockAdjustmentHandler applies queued stock adjustments. Adjustments that
// fail validation or name a missing product are dropped rather than retried.
func stockAdjustmentHandler(service *services.ProductService) rabbitmq.StockAdjustmentHandler {
	return func(adj models.StockAdjustment) error {
		err := service.AdjustQuantity(adj.ProductID, adj.Quantity)
		if apperrors.IsValidation(err) || apperrors.IsNotFound(err) {
			return &rabbitmq.PermanentError{Err: err}
		}
		return err
	}
}
