package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var DefaultAllowOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

// CORS allows the given origins. An empty list falls back to the local dev
// origins and "*" allows any origin without credentials.
func CORS(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "X-Request-Id", "X-Trace-Id"},
		ExposeHeaders: []string{"X-Request-Id", "X-Trace-Id"},
	}

	cleaned := make([]string, 0, len(origins))
	wildcard := false
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		if o == "*" {
			wildcard = true
			break
		}
		cleaned = append(cleaned, strings.TrimRight(o, "/"))
	}

	switch {
	case wildcard:
		cfg.AllowAllOrigins = true
	case len(cleaned) == 0:
		cfg.AllowOrigins = DefaultAllowOrigins
		cfg.AllowCredentials = true
	default:
		cfg.AllowOrigins = cleaned
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
