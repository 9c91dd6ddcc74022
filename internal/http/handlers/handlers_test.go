package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
	"github.com/yungbote/flashcards-backend/internal/services"
)

type fakeFlashcards struct {
	cards     []types.Card
	rows      []*types.Flashcard
	err       error
	gotNotes  string
	gotGroup  uint
	gotLimit  int
	callCount int
}

func (f *fakeFlashcards) GenerateAndStore(_ context.Context, notes string) ([]types.Card, error) {
	f.callCount++
	f.gotNotes = notes
	return f.cards, f.err
}

func (f *fakeFlashcards) Generate(ctx context.Context, notes string) ([]types.Card, error) {
	return f.GenerateAndStore(ctx, notes)
}

func (f *fakeFlashcards) List(_ context.Context, groupID uint, limit int) ([]*types.Flashcard, error) {
	f.callCount++
	f.gotGroup = groupID
	f.gotLimit = limit
	return f.rows, f.err
}

type fakeHealth struct{ status services.HealthStatus }

func (f fakeHealth) Check(context.Context) services.HealthStatus { return f.status }

func newRouter(fc services.FlashcardService, hs services.HealthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	fh := NewFlashcardHandler(logger.NewNop(), fc)
	r.POST("/generate-flashcards", fh.GenerateFlashcards)
	r.GET("/flashcards", fh.ListFlashcards)
	r.GET("/health", NewHealthHandler(hs).HealthCheck)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGenerateFlashcardsOK(t *testing.T) {
	fc := &fakeFlashcards{cards: []types.Card{{Question: "What is X?", Answer: "X is a thing we study."}}}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodPost, "/generate-flashcards", `{"notes":"X is a thing we study.","language":"en"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "X is a thing we study.", fc.gotNotes)

	var body struct {
		Flashcards []types.Card `json:"flashcards"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, fc.cards, body.Flashcards)
}

func TestGenerateFlashcardsMissingNotes(t *testing.T) {
	fc := &fakeFlashcards{err: types.NewError(types.CodeValidation, "build", "No notes provided", nil)}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodPost, "/generate-flashcards", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "", fc.gotNotes)
	assert.Equal(t, "No notes provided", decode(t, rec)["error"])
}

func TestGenerateFlashcardsNoFlashcards(t *testing.T) {
	fc := &fakeFlashcards{err: types.NewError(types.CodeNoFlashcards, "build", "No flashcards could be generated from the provided notes", nil)}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodPost, "/generate-flashcards", `{"notes":"Too short."}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "no_flashcards", decode(t, rec)["code"])
}

func TestGenerateFlashcardsStorageFailureHidesCause(t *testing.T) {
	fc := &fakeFlashcards{err: types.Wrap(types.CodePersistence, "persist", assert.AnError)}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodPost, "/generate-flashcards", `{"notes":"irrelevant"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decode(t, rec)
	assert.NotContains(t, body["error"], assert.AnError.Error())
	assert.NotContains(t, body, "flashcards")
}

func TestGenerateFlashcardsInvalidJSON(t *testing.T) {
	for _, body := range []string{`not json`, `{"notes": 42}`} {
		fc := &fakeFlashcards{}
		rec := do(newRouter(fc, fakeHealth{}), http.MethodPost, "/generate-flashcards", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Zero(t, fc.callCount, body)
	}
}

func TestListFlashcards(t *testing.T) {
	fc := &fakeFlashcards{rows: []*types.Flashcard{{ID: 3, GroupID: 1, Question: "Q?", Answer: "A."}}}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodGet, "/flashcards?group_id=1&limit=5", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(1), fc.gotGroup)
	assert.Equal(t, 5, fc.gotLimit)
	list, ok := decode(t, rec)["flashcards"].([]any)
	require.True(t, ok)
	assert.Len(t, list, 1)
}

func TestListFlashcardsEmptyIsArray(t *testing.T) {
	rec := do(newRouter(&fakeFlashcards{}, fakeHealth{}), http.MethodGet, "/flashcards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"flashcards":[]}`, rec.Body.String())
}

func TestListFlashcardsBadQuery(t *testing.T) {
	for _, q := range []string{"group_id=abc", "limit=-1"} {
		fc := &fakeFlashcards{}
		rec := do(newRouter(fc, fakeHealth{}), http.MethodGet, "/flashcards?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Zero(t, fc.callCount, q)
	}
}

func TestListFlashcardsUnavailable(t *testing.T) {
	fc := &fakeFlashcards{err: types.NewError(types.CodeUnavailable, "list", "database unavailable", nil)}
	rec := do(newRouter(fc, fakeHealth{}), http.MethodGet, "/flashcards", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	hs := fakeHealth{status: services.HealthStatus{Status: "healthy", Message: "Flashcard API is running", DatabaseStatus: "disconnected"}}
	rec := do(newRouter(&fakeFlashcards{}, hs), http.MethodGet, "/health", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","message":"Flashcard API is running","database_status":"disconnected"}`, rec.Body.String())
}
