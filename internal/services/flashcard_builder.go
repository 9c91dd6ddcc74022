package services

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/normalization"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const tracerName = "github.com/yungbote/flashcards-backend/internal/services"

type FlashcardBuilder interface {
	Build(ctx context.Context, notes string) ([]*types.Flashcard, error)
}

type flashcardBuilder struct {
	log       *logger.Logger
	generator QuestionGenerator
	maxCards  int
	minTokens int
}

func NewFlashcardBuilder(log *logger.Logger, generator QuestionGenerator) FlashcardBuilder {
	return &flashcardBuilder{
		log:       log.With("service", "FlashcardBuilder"),
		generator: generator,
		maxCards:  types.MaxPerRequest,
		minTokens: types.MinSentenceTokens,
	}
}

func (b *flashcardBuilder) Build(ctx context.Context, notes string) ([]*types.Flashcard, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, types.NewError(types.CodeValidation, "flashcards.build", "No notes provided", nil)
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "flashcards.build")
	defer span.End()

	cleaned := normalization.CleanText(notes)
	sentences := normalization.QualifyingSentences(cleaned, b.minTokens)
	if len(sentences) > b.maxCards {
		sentences = sentences[:b.maxCards]
	}
	span.SetAttributes(attribute.Int("flashcards.sentences", len(sentences)))

	cards := make([]*types.Flashcard, 0, len(sentences))
	fallbacks := 0
	for _, sentence := range sentences {
		res := b.generator.Resolve(ctx, sentence)
		if res.Source == SourceFallback {
			fallbacks++
		}
		if res.Question == "" {
			continue
		}
		cards = append(cards, &types.Flashcard{
			Question: res.Question,
			Answer:   sentence,
		})
	}

	if len(cards) == 0 {
		span.SetStatus(codes.Error, "no flashcards")
		return nil, types.NewError(types.CodeNoFlashcards, "flashcards.build", "No flashcards could be generated from the provided notes", nil)
	}

	span.SetAttributes(attribute.Int("flashcards.count", len(cards)), attribute.Int("flashcards.fallbacks", fallbacks))
	b.log.Debug("Flashcards built", "count", len(cards), "fallbacks", fallbacks)
	return cards, nil
}
