package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yungbote/flashcards-backend/internal/app"
	"github.com/yungbote/flashcards-backend/internal/data/db"
	"github.com/yungbote/flashcards-backend/internal/domain/flashcards"
	"github.com/yungbote/flashcards-backend/internal/platform/logger"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "flashcards",
		Short:         "Flashcard generation API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (defaults to $CONFIG_FILE)")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(generateCmd(&configPath))
	root.AddCommand(migrateCmd(&configPath))
	return root
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			if err := a.Run(ctx); err != nil {
				a.Log.Error("Server failed", "error", err)
				return err
			}
			a.Log.Info("Server stopped")
			return nil
		},
	}
}

func generateCmd(configPath *string) *cobra.Command {
	var (
		file    string
		persist bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards from notes and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, err := readNotes(cmd.InOrStdin(), file)
			if err != nil {
				return err
			}
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if !persist {
				// Nothing is stored, so skip the schema work.
				cfg.AutoMigrate = false
			}

			a, err := app.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			var cards []flashcards.Card
			if persist {
				cards, err = a.Services.Flashcards.GenerateAndStore(cmd.Context(), notes)
			} else {
				cards, err = a.Services.Flashcards.Generate(cmd.Context(), notes)
			}
			if err != nil {
				if msg := flashcards.MessageOf(err); msg != "" && !flashcards.IsCode(err, flashcards.CodePersistence) {
					return errors.New(msg)
				}
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{"flashcards": cards})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read notes from a file instead of stdin")
	cmd.Flags().BoolVar(&persist, "persist", false, "Store the generated flashcards")
	return cmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the flashcards schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogMode, logger.WithRedaction(cfg.LogRedaction), logger.WithHashSalt(cfg.LogHashSalt))
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			defer log.Sync()

			dbSvc, err := db.NewService(log, cfg.Database)
			if err != nil {
				return err
			}
			defer dbSvc.Close()

			if err := db.AutoMigrateAll(dbSvc.DB()); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info("Schema migrated", "driver", cfg.Database.Driver)
			fmt.Fprintln(cmd.OutOrStdout(), "migrated")
			return nil
		},
	}
}

func readNotes(stdin io.Reader, file string) (string, error) {
	var (
		raw []byte
		err error
	)
	if strings.TrimSpace(file) != "" && file != "-" {
		raw, err = os.ReadFile(file)
	} else {
		raw, err = io.ReadAll(io.LimitReader(stdin, 1<<20))
	}
	if err != nil {
		return "", fmt.Errorf("read notes: %w", err)
	}
	return string(raw), nil
}
