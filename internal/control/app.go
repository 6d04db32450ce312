// Package control wires configuration into a running advisor instance
// and owns its lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/vietddude/advisor/internal/advising"
	"github.com/vietddude/advisor/internal/advising/health"
	"github.com/vietddude/advisor/internal/core/worker"
	redisclient "github.com/vietddude/advisor/internal/infra/redis"
	"github.com/vietddude/advisor/internal/infra/storage"
	"github.com/vietddude/advisor/internal/infra/storage/memory"
	"github.com/vietddude/advisor/internal/infra/storage/postgres"
)

// Config holds the application configuration.
type Config struct {
	Port      int
	Database  postgres.Config
	Redis     redisclient.Config
	Retention time.Duration
}

// App is the main application struct that manages the advisor lifecycle.
type App struct {
	cfg          Config
	svc          *advising.Service
	healthServer *health.Server
	pruner       *worker.Pruner
	db           *postgres.DB
	redisClient  *redisclient.Client
	log          *slog.Logger

	cancel context.CancelFunc
}

// NewApp creates a new App instance with all dependencies initialized.
func NewApp(cfg Config) (*App, error) {
	// 1. Initialize Storage
	var repo storage.DecisionRepository
	var db *postgres.DB

	if cfg.Database.URL != "" {
		var err error
		db, err = postgres.NewDB(context.Background(), cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to init db: %w", err)
		}

		// Run migrations
		if err := goose.SetDialect("postgres"); err != nil {
			return nil, err
		}
		if err := goose.Up(db.DB.DB, "migrations"); err != nil {
			return nil, fmt.Errorf("failed to migrate db: %w", err)
		}

		repo = postgres.NewDecisionRepo(db)
		slog.Info("Using PostgreSQL storage")
	} else {
		repo = memory.NewDecisionRepo()
		slog.Info("Using Memory storage")
	}

	// 2. Initialize Redis review queue (optional)
	var redisClient *redisclient.Client
	var queue advising.ReviewQueue
	var reviews health.ReviewCounter
	var redisPinger health.Pinger

	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		queue = redisClient
		reviews = redisClient
		redisPinger = redisClient
		slog.Info("Review queue enabled")
	} else {
		slog.Info("Review queue disabled (no redis configured)")
	}

	// 3. Service and HTTP surface
	svc := advising.NewService(repo, queue)

	var dbPinger health.Pinger
	if db != nil {
		dbPinger = db
	}
	monitor := health.NewMonitor(dbPinger, redisPinger, reviews)
	healthServer := health.NewServer(monitor, svc, cfg.Port)

	return &App{
		cfg:          cfg,
		svc:          svc,
		healthServer: healthServer,
		pruner:       worker.NewPruner(cfg.Retention, repo),
		db:           db,
		redisClient:  redisClient,
		log:          slog.Default().With("component", "control"),
	}, nil
}

// Service exposes the advising service (for CLI one-shot use).
func (a *App) Service() *advising.Service {
	return a.svc
}

// Start launches the HTTP server and background workers.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	go a.pruner.Start(ctx)

	go func() {
		a.log.Info("HTTP server listening", "port", a.cfg.Port)
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("HTTP server stopped", "error", err)
		}
	}()

	return nil
}

// Stop shuts the application down gracefully.
func (a *App) Stop(ctx context.Context) error {
	if a.cancel != nil {
		a.cancel()
	}

	if err := a.healthServer.Stop(ctx); err != nil {
		a.log.Error("Failed to stop HTTP server", "error", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Failed to close redis", "error", err)
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
