package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flashcards-backend/internal/http/response"
	"github.com/yungbote/flashcards-backend/internal/platform/ctxutil"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

var errPanic = errors.New("An unexpected error occurred")

// Recover turns a handler panic into the standard 500 error body.
func Recover(log *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		if log != nil {
			fields := []interface{}{"path", c.Request.URL.Path, "panic", fmt.Sprint(recovered)}
			fields = append(fields, ctxutil.LogFields(c.Request.Context())...)
			log.Error("Recovered from panic", fields...)
		}
		response.RespondError(c, http.StatusInternalServerError, "internal", errPanic)
	})
}
