package app

import (
	"fmt"

	"github.com/yungbote/flashcards-backend/internal/platform/hfinference"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

type Clients struct {
	Inference hfinference.Client
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	inference, err := hfinference.NewClient(log, hfinference.Config{
		URL:     cfg.Inference.URL,
		Token:   cfg.Inference.Token,
		Timeout: cfg.Inference.Timeout,
	})
	if err != nil {
		return Clients{}, fmt.Errorf("init inference client: %w", err)
	}
	return Clients{Inference: inference}, nil
}
