package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"noteboard-backend/internal/config"
	"noteboard-backend/internal/logger"
	"noteboard-backend/internal/repo"
	"noteboard-backend/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	opts := seed.Options{}
	flag.IntVar(&opts.Boards, "boards", seed.DefaultBoards, "Number of boards to create")
	flag.IntVar(&opts.NotesPerBoard, "notes", seed.DefaultNotesPerBoard, "Number of notes per board")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.FromEnv()
	log := logger.NewLogger("noteboard-seed", cfg.LogLevel)
	if envErr != nil {
		log.Warn(".env file not found")
	}
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := config.MigrateAllModels(db, cfg.Migrate, log); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = seed.Run(ctx, repo.NewBoardRepository(db), repo.NewNoteRepository(db), opts, log)
	stop()

	if closeErr := config.CloseDB(db); closeErr != nil {
		log.WithError(closeErr).Error("Failed to close database")
	}
	if err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
}
