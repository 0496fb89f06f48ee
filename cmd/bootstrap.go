package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	config "task-board.com/task-board/internal/configs"
	repository "task-board.com/task-board/internal/repositories"
)

type app struct {
	cfg    config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  *repository.Store
}

// bootstrap loads configuration, builds the logger and opens the database.
// Every command shares it; callers must defer close.
func bootstrap() (*app, error) {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if envErr != nil {
		logger.Debug(".env file not found, using environment variables")
	}

	db, err := config.NewDatabase(cfg.DatabaseDSN, cfg.Production())
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		db:     db,
		store:  repository.NewStore(db),
	}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
