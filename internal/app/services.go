package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
	"github.com/yungbote/flashcards-backend/internal/services"
)

type Services struct {
	Questions  services.QuestionGenerator
	Builder    services.FlashcardBuilder
	Store      services.FlashcardStore
	Flashcards services.FlashcardService
	Health     services.HealthService
}

func wireServices(gdb *gorm.DB, dbSvc *db.Service, log *logger.Logger, clients Clients, reposet Repos) Services {
	log.Info("Wiring services...")

	questions := services.NewQuestionGenerator(log, clients.Inference)
	builder := services.NewFlashcardBuilder(log, questions)
	store := services.NewFlashcardStore(log, db.NewGormTxRunner(gdb), reposet.Flashcard)

	var pinger services.Pinger
	if dbSvc != nil {
		pinger = dbSvc
	}

	return Services{
		Questions:  questions,
		Builder:    builder,
		Store:      store,
		Flashcards: services.NewFlashcardService(log, builder, store, reposet.Flashcard),
		Health:     services.NewHealthService(log, pinger),
	}
}
