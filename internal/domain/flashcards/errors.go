package flashcards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode classifies flashcard pipeline failures.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation"
	CodeNoFlashcards ErrorCode = "no_flashcards"
	CodeGeneration   ErrorCode = "generation"
	CodePersistence  ErrorCode = "persistence"
	CodeUnavailable  ErrorCode = "unavailable"
	CodeInternal     ErrorCode = "internal"
)

// Error is the canonical pipeline error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates err with code. Errors that already carry a code pass through.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return err
	}
	return NewError(code, op, err.Error(), err)
}

func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

func CodeOf(err error) ErrorCode {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// MessageOf returns the human readable message of a coded error, or "".
func MessageOf(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Message
}
