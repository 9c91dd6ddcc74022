package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/http/response"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
	"github.com/yungbote/flashcards-backend/internal/services"
)

const maxRequestBytes = 1 << 20

type FlashcardHandler struct {
	log        *logger.Logger
	flashcards services.FlashcardService
}

func NewFlashcardHandler(log *logger.Logger, flashcards services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{
		log:        log.With("handler", "FlashcardHandler"),
		flashcards: flashcards,
	}
}

type generateFlashcardsRequest struct {
	Notes *string `json:"notes"`
	// Language is accepted for compatibility and currently unused.
	Language string `json:"language"`
}

type flashcardsResponse struct {
	Flashcards []types.Card `json:"flashcards"`
}

type storedFlashcardsResponse struct {
	Flashcards []*types.Flashcard `json:"flashcards"`
}

// POST /generate-flashcards
func (h *FlashcardHandler) GenerateFlashcards(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req generateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.RespondError(c, http.StatusRequestEntityTooLarge, "request_too_large", errors.New("Request body too large"))
			return
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("Invalid JSON body"))
		return
	}

	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	cards, err := h.flashcards.GenerateAndStore(c.Request.Context(), notes)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, flashcardsResponse{Flashcards: cards})
}

// GET /flashcards?group_id=&limit=
func (h *FlashcardHandler) ListFlashcards(c *gin.Context) {
	groupID, err := parseUintQuery(c, "group_id")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("group_id must be a positive integer"))
		return
	}
	limit, err := parseUintQuery(c, "limit")
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New("limit must be a positive integer"))
		return
	}

	rows, err := h.flashcards.List(c.Request.Context(), uint(groupID), int(limit))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	if rows == nil {
		rows = []*types.Flashcard{}
	}
	response.RespondOK(c, storedFlashcardsResponse{Flashcards: rows})
}

func parseUintQuery(c *gin.Context, key string) (uint64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 32)
}
