package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"employeeapi/docs"
	"employeeapi/internal/config"
	"employeeapi/internal/database"
	"employeeapi/internal/database/migration"
	handlers "employeeapi/internal/http/handler"
	"employeeapi/internal/http/middleware"
	"employeeapi/internal/lib/logger/sl"
	"employeeapi/internal/metrics"
	"employeeapi/internal/otel"
	"employeeapi/internal/repository"
	"employeeapi/internal/repository/memory"
	"employeeapi/internal/repository/objectstore"
	"employeeapi/internal/repository/postgres"
	"employeeapi/internal/service"
	"employeeapi/internal/storage"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"

	shutdownTimeout = 10 * time.Second
)

// @title Employee API
// @version 1.0
// @description CRUD REST API for employee records.
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", sl.Err(err))
		os.Exit(1)
	}

	log := setupLogger(cfg.Env)
	log.Info("starting employee api", slog.String("env", cfg.Env), slog.String("storage_driver", cfg.StorageDriver))

	if err := run(cfg, log); err != nil {
		log.Error("service stopped with error", sl.Err(err))
		os.Exit(1)
	}
	log.Info("service stopped")
}

func run(cfg *config.AppConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracer provider shutdown", sl.Err(err))
		}
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(reg)

	backend, closeBackend, err := newRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeBackend()

	repo := repository.NewInstrumented(backend, appMetrics)
	employeeSvc := service.NewEmployeeService(repo)

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(log),
		DisableStartupMessage: cfg.Env != envLocal,
	})

	app.Use(fiberrecover.New())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		return c.Path() == "/metrics" || c.Path() == "/healthz"
	})))
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	app.Get("/swagger/*", swaggerHandler())

	handlers.RegisterRoutes(app, repo, employeeSvc, log)

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", slog.String("addr", addr))
		listenErr <- app.Listen(addr)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// swaggerHandler serves the Swagger UI with the request's host and scheme.
// docs.SwaggerInfo is package state, so requests take turns rendering it.
func swaggerHandler() fiber.Handler {
	var mu sync.Mutex

	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		mu.Lock()
		defer mu.Unlock()

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}

// newRepository builds the storage backend selected by STORAGE_DRIVER.
// The returned close function releases the backend's resources.
func newRepository(ctx context.Context, cfg *config.AppConfig, log *slog.Logger) (repository.EmployeeRepository, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("using in-memory storage; data is lost on restart")
		return memory.NewEmployeeMemory(), func() {}, nil

	case config.DriverObjectStore:
		store, err := storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, nil, fmt.Errorf("init object storage: %w", err)
		}
		return objectstore.NewEmployeeObjectStore(store, cfg.MinIO.Prefix), func() {}, nil

	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := migration.EnsureMigrated(ctx, db, cfg.Database.MigrationsDir, log); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.Warn("close database", sl.Err(err))
			}
		}
		return postgres.NewEmployeePostgres(db), closeDB, nil

	default:
		return nil, nil, errors.New("unsupported storage driver: " + cfg.StorageDriver)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}
