package services

import (
	"context"
	"errors"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	repos "github.com/yungbote/flashcards-backend/internal/data/repos/flashcards"
	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// FlashcardService turns notes into stored flashcards. Results are only
// returned once they are committed; a storage failure fails the request.
type FlashcardService interface {
	GenerateAndStore(ctx context.Context, notes string) ([]types.Card, error)
	Generate(ctx context.Context, notes string) ([]types.Card, error)
	List(ctx context.Context, groupID uint, limit int) ([]*types.Flashcard, error)
}

type flashcardService struct {
	log     *logger.Logger
	builder FlashcardBuilder
	store   FlashcardStore
	repo    repos.FlashcardRepo
}

func NewFlashcardService(log *logger.Logger, builder FlashcardBuilder, store FlashcardStore, repo repos.FlashcardRepo) FlashcardService {
	return &flashcardService{
		log:     log.With("service", "FlashcardService"),
		builder: builder,
		store:   store,
		repo:    repo,
	}
}

func (s *flashcardService) GenerateAndStore(ctx context.Context, notes string) ([]types.Card, error) {
	batch, err := s.builder.Build(ctx, notes)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.Persist(ctx, batch); err != nil {
		return nil, err
	}
	return types.Cards(batch), nil
}

func (s *flashcardService) Generate(ctx context.Context, notes string) ([]types.Card, error) {
	batch, err := s.builder.Build(ctx, notes)
	if err != nil {
		return nil, err
	}
	return types.Cards(batch), nil
}

func (s *flashcardService) List(ctx context.Context, groupID uint, limit int) ([]*types.Flashcard, error) {
	if groupID == 0 {
		groupID = types.DefaultGroupID
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	rows, err := s.repo.ListByGroup(ctx, nil, groupID, limit)
	if err != nil {
		if errors.Is(err, db.ErrNoDatabase) {
			return nil, types.NewError(types.CodeUnavailable, "flashcards.list", "database unavailable", err)
		}
		return nil, db.MapError("flashcards.list", err)
	}
	return rows, nil
}
