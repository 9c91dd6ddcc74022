package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/flashcards-backend/internal/http/handlers"
	httpMW "github.com/yungbote/flashcards-backend/internal/http/middleware"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	FlashcardHandler *httpH.FlashcardHandler
	HealthHandler    *httpH.HealthHandler

	// Metrics, when set, is recorded per request and served on /metrics.
	Metrics *observability.Metrics

	// ServiceName labels server spans; empty disables gin tracing.
	ServiceName string
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.NewNop()
	}

	r := gin.New()
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(log.With("component", "http")))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.Recover(log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	// Flashcards
	if cfg.FlashcardHandler != nil {
		r.POST("/generate-flashcards", cfg.FlashcardHandler.GenerateFlashcards)
		r.GET("/flashcards", cfg.FlashcardHandler.ListFlashcards)
	}

	return r
}
