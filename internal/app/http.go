package app

import (
	"github.com/yungbote/flashcards-backend/internal/http"
	httpH "github.com/yungbote/flashcards-backend/internal/http/handlers"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	Flashcard *httpH.FlashcardHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(serviceset.Health),
		Flashcard: httpH.NewFlashcardHandler(log, serviceset.Flashcards),
	}
}

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	routerCfg := http.RouterConfig{
		Log:              log,
		FlashcardHandler: handlers.Flashcard,
		HealthHandler:    handlers.Health,
		Metrics:          metrics,
		CORSOrigins:      cfg.CORSOrigins,
	}
	if cfg.OTel.Enabled {
		routerCfg.ServiceName = cfg.OTel.ServiceName
	}
	return http.NewServer(cfg.Addr(), routerCfg)
}
