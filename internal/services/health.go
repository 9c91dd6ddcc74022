package services

import (
	"context"
	"errors"
	"time"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
	DatabaseError        = "error"

	defaultProbeTimeout = 2 * time.Second
)

type HealthStatus struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	DatabaseStatus string `json:"database_status"`
}

// Pinger is the storage connectivity probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService interface {
	Check(ctx context.Context) HealthStatus
}

type healthService struct {
	log     *logger.Logger
	db      Pinger
	timeout time.Duration
}

func NewHealthService(log *logger.Logger, pinger Pinger) HealthService {
	return &healthService{
		log:     log.With("service", "HealthService"),
		db:      pinger,
		timeout: defaultProbeTimeout,
	}
}

func (h *healthService) Check(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:         "healthy",
		Message:        "Flashcard API is running",
		DatabaseStatus: h.probe(ctx),
	}
}

func (h *healthService) probe(ctx context.Context) string {
	if h.db == nil {
		return DatabaseDisconnected
	}
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	err := h.db.Ping(ctx)
	switch {
	case err == nil:
		return DatabaseConnected
	case errors.Is(err, db.ErrNoDatabase):
		return DatabaseDisconnected
	default:
		h.log.Warn("Database health probe failed", "class", db.Classify(err), "error", err)
		return DatabaseError
	}
}
