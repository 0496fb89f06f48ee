package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "task-board.com/task-board/internal/models"
)

type BoardRepository struct {
	db *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts the board together with any columns already attached to it.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board) error {
	if err := r.db.WithContext(ctx).Create(board).Error; err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

func (r *BoardRepository) FindByID(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	if err := r.db.WithContext(ctx).First(&board, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &board, nil
}

// FindDetailed loads the board with its columns and their tasks, each in
// position order.
func (r *BoardRepository) FindDetailed(ctx context.Context, id string) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Preload("Columns.Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		First(&board, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &board, nil
}

func (r *BoardRepository) ListByUser(ctx context.Context, userID string) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&boards).Error
	return boards, err
}

func (r *BoardRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Board{}).Order("created_at asc").Pluck("id", &ids).Error
	return ids, err
}

func (r *BoardRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Board{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the board, its columns and their tasks.
func (r *BoardRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	columnIDs := db.Model(&model.Column{}).Select("id").Where("board_id = ?", id)
	if err := db.Where("column_id IN (?)", columnIDs).Delete(&model.Task{}).Error; err != nil {
		return fmt.Errorf("delete board tasks: %w", err)
	}
	if err := db.Where("board_id = ?", id).Delete(&model.Column{}).Error; err != nil {
		return fmt.Errorf("delete board columns: %w", err)
	}

	res := db.Where("id = ?", id).Delete(&model.Board{})
	if res.Error != nil {
		return fmt.Errorf("delete board: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
