package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/flashcards-backend/internal/domain/flashcards"
)

func AutoMigrateAll(db *gorm.DB) error {
	if db == nil {
		return ErrNoDatabase
	}
	return db.AutoMigrate(
		&flashcards.Flashcard{},
	)
}
