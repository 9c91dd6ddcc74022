package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	repos "github.com/yungbote/flashcards-backend/internal/data/repos/flashcards"
	"github.com/yungbote/flashcards-backend/internal/data/repos/testutil"
	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type failingTxRunner struct{ err error }

func (f failingTxRunner) InTx(ctx context.Context, fn func(dbc db.TxContext) error) error {
	return f.err
}

const photosynthesisNotes = "The sky is blue. Photosynthesis converts sunlight into chemical energy in plants."

func TestGenerateAndStoreEndToEnd(t *testing.T) {
	gdb := testutil.DB(t)
	log := testutil.Logger(t)
	repo := repos.NewFlashcardRepo(gdb, log)
	svc := NewFlashcardService(log,
		NewFlashcardBuilder(log, NewQuestionGenerator(log, &fakeInference{text: "What converts sunlight?"})),
		NewFlashcardStore(log, db.NewGormTxRunner(gdb), repo),
		repo,
	)
	ctx := context.Background()

	cards, err := svc.GenerateAndStore(ctx, photosynthesisNotes)
	require.NoError(t, err)
	require.Equal(t, []types.Card{{
		Question: "What converts sunlight?",
		Answer:   "Photosynthesis converts sunlight into chemical energy in plants.",
	}}, cards)

	stored, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, cards[0].Answer, stored[0].Answer)
}

func TestGenerateAndStoreFailsStrictlyOnStorageError(t *testing.T) {
	log := logger.NewNop()
	svc := NewFlashcardService(log,
		NewFlashcardBuilder(log, NewQuestionGenerator(log, &fakeInference{text: "q?"})),
		NewFlashcardStore(log, failingTxRunner{err: errors.New("connection reset")}, &spyRepo{}),
		&spyRepo{},
	)
	cards, err := svc.GenerateAndStore(context.Background(), photosynthesisNotes)
	require.Error(t, err)
	assert.Nil(t, cards)
	assert.True(t, types.IsCode(err, types.CodePersistence))
}

func TestGenerateSkipsStorage(t *testing.T) {
	log := logger.NewNop()
	tx := &spyTxRunner{}
	svc := NewFlashcardService(log,
		NewFlashcardBuilder(log, NewQuestionGenerator(log, nil)),
		NewFlashcardStore(log, tx, &spyRepo{}),
		&spyRepo{},
	)
	cards, err := svc.Generate(context.Background(), photosynthesisNotes)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Zero(t, tx.calls)
}

func TestListWithoutDatabase(t *testing.T) {
	log := logger.NewNop()
	repo := repos.NewFlashcardRepo(nil, log)
	svc := NewFlashcardService(log, nil, nil, repo)
	_, err := svc.List(context.Background(), 1, 10)
	require.Error(t, err)
	assert.True(t, types.IsCode(err, types.CodeUnavailable))
}
