package app

import (
	"gorm.io/gorm"

	repos "github.com/yungbote/flashcards-backend/internal/data/repos/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type Repos struct {
	Flashcard repos.FlashcardRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Flashcard: repos.NewFlashcardRepo(db, log),
	}
}
