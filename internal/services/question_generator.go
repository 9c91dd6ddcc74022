package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/ctxutil"
	"github.com/yungbote/flashcards-backend/internal/platform/hfinference"
	"github.com/yungbote/flashcards-backend/internal/platform/httpx"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const (
	questionPrompt = "generate question: "
	// BlankMarker replaces the hidden word in fill-in-the-blank questions.
	BlankMarker = "______"
)

type QuestionSource string

const (
	SourceRemote   QuestionSource = "remote"
	SourceFallback QuestionSource = "fallback"
)

// GenerationResult is the outcome of producing one question. Err is set
// when the remote model could not be used and records why; Question is
// always usable.
type GenerationResult struct {
	Question string
	Source   QuestionSource
	Err      error
}

type QuestionGenerator interface {
	// Generate always returns a non-empty question for sentence.
	Generate(ctx context.Context, sentence string) string
	// Resolve is Generate with provenance.
	Resolve(ctx context.Context, sentence string) GenerationResult
}

type questionGenerator struct {
	log    *logger.Logger
	client hfinference.Client
}

func NewQuestionGenerator(log *logger.Logger, client hfinference.Client) QuestionGenerator {
	return &questionGenerator{
		log:    log.With("service", "QuestionGenerator"),
		client: client,
	}
}

func (g *questionGenerator) Generate(ctx context.Context, sentence string) string {
	return g.Resolve(ctx, sentence).Question
}

func (g *questionGenerator) Resolve(ctx context.Context, sentence string) GenerationResult {
	remote := g.attemptRemote(ctx, sentence)
	span := trace.SpanFromContext(ctx)
	if remote.Err == nil {
		observability.Current().IncQuestion(string(SourceRemote))
		span.AddEvent("question.generated", trace.WithAttributes(attribute.String("source", string(SourceRemote))))
		return remote
	}

	fields := []interface{}{
		"reason", httpx.FailureReason(remote.Err),
		"error", remote.Err.Error(),
	}
	g.log.Warn("Question generation failed, using fallback", append(fields, ctxutil.LogFields(ctx)...)...)
	span.AddEvent("question.generated", trace.WithAttributes(
		attribute.String("source", string(SourceFallback)),
		attribute.String("reason", httpx.FailureReason(remote.Err)),
	))
	observability.Current().IncQuestion(string(SourceFallback))
	return GenerationResult{
		Question: FallbackQuestion(sentence),
		Source:   SourceFallback,
		Err:      remote.Err,
	}
}

func (g *questionGenerator) attemptRemote(ctx context.Context, sentence string) GenerationResult {
	if g.client == nil {
		return GenerationResult{Err: types.NewError(types.CodeGeneration, "question.remote", "inference client not configured", nil)}
	}
	text, err := g.client.GenerateText(ctx, questionPrompt+sentence)
	if err != nil {
		return GenerationResult{Err: types.Wrap(types.CodeGeneration, "question.remote", err)}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return GenerationResult{Err: types.NewError(types.CodeGeneration, "question.remote", "blank generated_text", nil)}
	}
	return GenerationResult{Question: text, Source: SourceRemote}
}

// FallbackQuestion builds a question locally. Sentences with more than three
// words get their middle word blanked out; shorter ones become "What is ...?".
func FallbackQuestion(sentence string) string {
	words := strings.Fields(sentence)
	if len(words) > 3 {
		words[len(words)/2] = BlankMarker
		return strings.Join(words, " ") + "?"
	}
	return "What is " + sentence + "?"
}
