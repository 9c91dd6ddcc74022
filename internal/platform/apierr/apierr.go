package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/flashcards-backend/internal/domain/flashcards"
)

type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &Error{Status: status, Code: code, Message: msg, Err: err}
}

const (
	msgInternal    = "An unexpected error occurred"
	msgPersistence = "Failed to store flashcards"
	msgUnavailable = "Storage is currently unavailable"
)

// FromError maps err to the HTTP status, code and public message. Client
// errors carry their own message; server errors get a fixed one.
func FromError(err error) *Error {
	if err == nil {
		return &Error{Status: http.StatusOK}
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	code := flashcards.CodeOf(err)
	switch code {
	case flashcards.CodeValidation, flashcards.CodeNoFlashcards:
		msg := strings.TrimSpace(flashcards.MessageOf(err))
		if msg == "" {
			msg = string(code)
		}
		return &Error{Status: http.StatusBadRequest, Code: string(code), Message: msg, Err: err}
	case flashcards.CodePersistence:
		return &Error{Status: http.StatusInternalServerError, Code: string(code), Message: msgPersistence, Err: err}
	case flashcards.CodeUnavailable:
		return &Error{Status: http.StatusServiceUnavailable, Code: string(code), Message: msgUnavailable, Err: err}
	default:
		return &Error{Status: http.StatusInternalServerError, Code: string(flashcards.CodeInternal), Message: msgInternal, Err: err}
	}
}
