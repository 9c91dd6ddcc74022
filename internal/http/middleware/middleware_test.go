package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/flashcards-backend/internal/platform/ctxutil"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

func TestAttachTraceContextGeneratesIDs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var seen *ctxutil.TraceData
	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/health", func(c *gin.Context) {
		seen = ctxutil.GetTraceData(c.Request.Context())
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if seen == nil || seen.RequestID == "" || seen.TraceID == "" {
		t.Fatalf("expected trace data on request context, got %+v", seen)
	}
	if got := rec.Header().Get(headerRequestID); got != seen.RequestID {
		t.Fatalf("request id header mismatch: got=%q want=%q", got, seen.RequestID)
	}
}

func TestAttachTraceContextKeepsIncomingRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if got := rec.Header().Get(headerRequestID); got != "req-123" {
		t.Fatalf("unexpected request id: got=%q", got)
	}
}

func TestAttachTraceContextRejectsUnsafeRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AttachTraceContext())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(headerRequestID, "evil\nid")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	got := rec.Header().Get(headerRequestID)
	if got == "" || got == "evil\nid" {
		t.Fatalf("expected a generated request id, got %q", got)
	}
	if tid := rec.Header().Get(headerTraceID); tid != got {
		t.Fatalf("expected trace id to default to request id, got %q", tid)
	}
}

func TestRecoverRendersErrorBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()), Recover(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" || body["error"] == "kaboom" {
		t.Fatalf("expected generic error message, got %q", body["error"])
	}
}
