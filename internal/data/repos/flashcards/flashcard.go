package flashcards

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	types "github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

// DefaultInsertBatchSize keeps a full request batch in one INSERT statement.
const DefaultInsertBatchSize = 100

type FlashcardRepo interface {
	Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error)
	ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint, limit int) ([]*types.Flashcard, error)
	CountByGroup(ctx context.Context, tx *gorm.DB, groupID uint) (int64, error)
}

type flashcardRepo struct {
	db        *gorm.DB
	log       *logger.Logger
	batchSize int
}

type RepoOption func(*flashcardRepo)

// WithInsertBatchSize bounds how many rows go into a single INSERT.
func WithInsertBatchSize(n int) RepoOption {
	return func(r *flashcardRepo) {
		if n > 0 {
			r.batchSize = n
		}
	}
}

func NewFlashcardRepo(gdb *gorm.DB, baseLog *logger.Logger, opts ...RepoOption) FlashcardRepo {
	repoLog := baseLog.With("repo", "FlashcardRepo")
	r := &flashcardRepo{db: gdb, log: repoLog, batchSize: DefaultInsertBatchSize}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *flashcardRepo) conn(tx *gorm.DB) (*gorm.DB, error) {
	if tx != nil {
		return tx, nil
	}
	if r.db == nil {
		return nil, db.ErrNoDatabase
	}
	return r.db, nil
}

func (r *flashcardRepo) Create(ctx context.Context, tx *gorm.DB, cards []*types.Flashcard) ([]*types.Flashcard, error) {
	if len(cards) == 0 {
		return []*types.Flashcard{}, nil
	}
	transaction, err := r.conn(tx)
	if err != nil {
		return nil, err
	}
	if err := transaction.WithContext(ctx).CreateInBatches(&cards, r.batchSize).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *flashcardRepo) ListByGroup(ctx context.Context, tx *gorm.DB, groupID uint, limit int) ([]*types.Flashcard, error) {
	var results []*types.Flashcard
	transaction, err := r.conn(tx)
	if err != nil {
		return nil, err
	}
	q := transaction.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *flashcardRepo) CountByGroup(ctx context.Context, tx *gorm.DB, groupID uint) (int64, error) {
	transaction, err := r.conn(tx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Flashcard{}).
		Where("group_id = ?", groupID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
