package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flashcards-backend/internal/platform/apierr"
)

type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: msg,
		Code:  code,
	})
}

// RespondAPIError renders err through apierr so internal causes never leak.
func RespondAPIError(c *gin.Context, err error) {
	e := apierr.FromError(err)
	if e.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(e.Status, ErrorEnvelope{
		Error: e.Message,
		Code:  e.Code,
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
