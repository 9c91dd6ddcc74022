package app

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/http"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *db.Service
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *http.Server
	Metrics  *observability.Metrics

	shutdownOTel func(context.Context) error
}

// New wires the application. A database that cannot be reached is logged and
// left nil so the process still serves health checks; persistence then fails
// per request.
func New(ctx context.Context, cfg Config) (*App, error) {
	log, err := logger.New(cfg.LogMode,
		logger.WithRedaction(cfg.LogRedaction),
		logger.WithHashSalt(cfg.LogHashSalt),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return NewWithLogger(ctx, log, cfg)
}

func NewWithLogger(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		log.Sync()
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	shutdownOTel := observability.InitOTel(ctx, log, cfg.OTel)
	metrics := observability.Init(cfg.MetricsEnabled)

	dbSvc, err := OpenDatabase(log, cfg)
	if err != nil {
		log.Warn("Database init failed", "driver", cfg.Database.Driver, "error", err)
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbSvc.Close()
		log.Sync()
		return nil, err
	}

	var gdb *gorm.DB
	if dbSvc != nil {
		gdb = dbSvc.DB()
	}
	reposet := wireRepos(gdb, log)
	serviceset := wireServices(gdb, dbSvc, log, clients, reposet)
	handlerset := wireHandlers(log, serviceset)

	return &App{
		Log:          log,
		DB:           dbSvc,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Server:       wireServer(log, cfg, handlerset, metrics),
		Metrics:      metrics,
		shutdownOTel: shutdownOTel,
	}, nil
}

// OpenDatabase connects and, when enabled, migrates the schema.
func OpenDatabase(log *logger.Logger, cfg Config) (*db.Service, error) {
	dbSvc, err := db.NewService(log, cfg.Database)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrateAll(dbSvc.DB()); err != nil {
			_ = dbSvc.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}
	return dbSvc, nil
}

// Run serves HTTP until ctx is canceled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("Server listening", "addr", a.Server.Addr())
	return a.Server.Run(ctx)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.shutdownOTel != nil {
		if err := a.shutdownOTel(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if err := a.DB.Close(); err != nil {
		a.Log.Warn("Database close failed", "error", err)
	}
	a.Log.Sync()
}
