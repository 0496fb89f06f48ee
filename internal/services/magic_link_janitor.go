package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	repository "task-board.com/task-board/internal/repositories"
)

// MagicLinkJanitor periodically deletes magic links past their expiry.
type MagicLinkJanitor struct {
	store    *repository.Store
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewMagicLinkJanitor(store *repository.Store, interval time.Duration, logger *zap.Logger) *MagicLinkJanitor {
	return &MagicLinkJanitor{
		store:    store,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Run prunes once immediately and then on every tick until ctx is done.
func (j *MagicLinkJanitor) Run(ctx context.Context) error {
	j.logger.Info("magic link janitor started", zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		if _, err := j.PruneOnce(ctx); err != nil && ctx.Err() == nil {
			j.logger.Error("failed to prune magic links", zap.Error(err))
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			j.logger.Info("magic link janitor stopped")
			return nil
		}
	}
}

func (j *MagicLinkJanitor) PruneOnce(ctx context.Context) (int64, error) {
	deleted, err := j.store.MagicLinks().DeleteExpired(ctx, j.now().UTC())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		j.logger.Info("pruned expired magic links", zap.Int64("count", deleted))
	}
	return deleted, nil
}
