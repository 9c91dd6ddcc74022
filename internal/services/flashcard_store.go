package services

import (
	"context"
	"strings"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	repos "github.com/yungbote/flashcards-backend/internal/data/repos/flashcards"
	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/observability"
	"github.com/yungbote/flashcards-backend/internal/platform/ctxutil"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type FlashcardStore interface {
	// Persist writes batch in one transaction and returns the rows written.
	Persist(ctx context.Context, batch []*types.Flashcard) (int, error)
}

type flashcardStore struct {
	log     *logger.Logger
	tx      db.TxRunner
	repo    repos.FlashcardRepo
	groupID uint
}

func NewFlashcardStore(log *logger.Logger, tx db.TxRunner, repo repos.FlashcardRepo) FlashcardStore {
	return &flashcardStore{
		log:     log.With("service", "FlashcardStore"),
		tx:      tx,
		repo:    repo,
		groupID: types.DefaultGroupID,
	}
}

func (s *flashcardStore) Persist(ctx context.Context, batch []*types.Flashcard) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	rows := make([]*types.Flashcard, 0, len(batch))
	for _, card := range batch {
		if card == nil || strings.TrimSpace(card.Question) == "" || strings.TrimSpace(card.Answer) == "" {
			return 0, types.NewError(types.CodeValidation, "flashcards.persist", "flashcard question and answer must be non-empty", nil)
		}
		card.GroupID = s.groupID
		rows = append(rows, card)
	}

	err := s.tx.InTx(ctx, func(dbc db.TxContext) error {
		_, err := s.repo.Create(dbc.Ctx, dbc.Tx, rows)
		return err
	})
	if err != nil {
		class := db.Classify(err)
		observability.Current().IncPersistFailure(class)
		fields := []interface{}{"count", len(rows), "class", class, "error", err}
		s.log.Error("Failed to store flashcards", append(fields, ctxutil.LogFields(ctx)...)...)
		return 0, db.MapError("flashcards.persist", err)
	}

	observability.Current().AddPersisted(len(rows))
	s.log.Info("Flashcards stored", "count", len(rows), "group_id", s.groupID)
	return len(rows), nil
}
