package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	model "task-board.com/task-board/internal/models"
)

type MagicLinkRepository struct {
	db *gorm.DB
}

func NewMagicLinkRepository(db *gorm.DB) *MagicLinkRepository {
	return &MagicLinkRepository{db: db}
}

func (r *MagicLinkRepository) Create(ctx context.Context, link *model.MagicLink) error {
	if err := r.db.WithContext(ctx).Create(link).Error; err != nil {
		return fmt.Errorf("create magic link: %w", err)
	}
	return nil
}

func (r *MagicLinkRepository) FindByToken(ctx context.Context, token string) (*model.MagicLink, error) {
	var link model.MagicLink
	if err := r.db.WithContext(ctx).First(&link, "token = ?", token).Error; err != nil {
		return nil, notFound(err)
	}
	return &link, nil
}

// MarkUsed consumes the link. It fails with ErrAlreadyApplied when another
// request consumed it first.
func (r *MagicLinkRepository) MarkUsed(ctx context.Context, id, userID string, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.MagicLink{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]interface{}{
			"used_at": at,
			"user_id": userID,
		})
	if res.Error != nil {
		return fmt.Errorf("mark magic link used: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyApplied
	}
	return nil
}

func (r *MagicLinkRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&model.MagicLink{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete expired magic links: %w", res.Error)
	}
	return res.RowsAffected, nil
}
