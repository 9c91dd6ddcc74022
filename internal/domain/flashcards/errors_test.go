package flashcards

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{NewError(CodeValidation, "build", "No notes provided", nil), "build: No notes provided (validation)"},
		{NewError(CodeInternal, "build", "", nil), "build (internal)"},
		{NewError(CodeNoFlashcards, "", "nothing", nil), "nothing (no_flashcards)"},
		{NewError(CodePersistence, "", "", nil), "persistence"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("Error(): got=%q want=%q", got, tc.want)
		}
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	cause := errors.New("deadlock")
	err := fmt.Errorf("persist: %w", Wrap(CodePersistence, "store.persist", cause))
	if !IsCode(err, CodePersistence) {
		t.Fatalf("expected persistence code, got %q", CodeOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
}

func TestWrapPassesThroughCodedErrors(t *testing.T) {
	in := NewError(CodeValidation, "op", "bad", nil)
	if out := Wrap(CodeInternal, "other", in); out != in {
		t.Fatalf("expected passthrough")
	}
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(errors.New("x")); got != "" {
		t.Fatalf("CodeOf: got=%q want empty", got)
	}
	if got := MessageOf(NewError(CodeValidation, "op", "No notes provided", nil)); got != "No notes provided" {
		t.Fatalf("MessageOf: got=%q", got)
	}
}

func TestCardsSkipsNil(t *testing.T) {
	got := Cards([]*Flashcard{{Question: "q", Answer: "a"}, nil})
	if len(got) != 1 || got[0] != (Card{Question: "q", Answer: "a"}) {
		t.Fatalf("Cards: got=%v", got)
	}
}
