package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/position"
)

type ColumnRepository struct {
	db *gorm.DB
}

func NewColumnRepository(db *gorm.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

func (r *ColumnRepository) Create(ctx context.Context, column *model.Column) error {
	if err := r.db.WithContext(ctx).Create(column).Error; err != nil {
		return fmt.Errorf("create column: %w", err)
	}
	return nil
}

func (r *ColumnRepository) FindByID(ctx context.Context, id string) (*model.Column, error) {
	var column model.Column
	if err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &column, nil
}

func (r *ColumnRepository) FindInBoard(ctx context.Context, boardID, id string) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).First(&column, "id = ? AND board_id = ?", id, boardID).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &column, nil
}

func (r *ColumnRepository) ListByBoard(ctx context.Context, boardID string) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Where("board_id = ?", boardID).
		Order("position asc").
		Find(&columns).Error
	return columns, err
}

func (r *ColumnRepository) MaxPosition(ctx context.Context, boardID string) (*int, error) {
	return maxPosition(ctx, r.db, &model.Column{}, "board_id", boardID)
}

func (r *ColumnRepository) Shift(ctx context.Context, shifts ...position.Shift) error {
	for _, s := range shifts {
		if _, err := shiftPositions(ctx, r.db, &model.Column{}, "board_id", s); err != nil {
			return err
		}
	}
	return nil
}

// Place writes the final position of a column. Columns never change board.
func (r *ColumnRepository) Place(ctx context.Context, id string, p position.Placement) error {
	res := r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ? AND board_id = ?", id, p.ParentID).
		Updates(map[string]interface{}{"position": p.Position})
	if res.Error != nil {
		return fmt.Errorf("place column: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ColumnRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Column{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update column: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ColumnRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Column{})
	if res.Error != nil {
		return fmt.Errorf("delete column: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnerID returns the id of the user owning the column's board.
func (r *ColumnRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var owners []string
	err := r.db.WithContext(ctx).Model(&model.Column{}).
		Joins("JOIN boards ON boards.id = columns.board_id").
		Where("columns.id = ?", id).
		Pluck("boards.user_id", &owners).Error
	if err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", ErrNotFound
	}
	return owners[0], nil
}

// Reindex renumbers the columns of a board to 0..n-1, keeping their current
// order (ties broken by creation time). It returns how many rows moved.
func (r *ColumnRepository) Reindex(ctx context.Context, boardID string) (int, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("position asc, created_at asc").
		Find(&columns).Error
	if err != nil {
		return 0, err
	}

	fixed := 0
	for i, column := range columns {
		if column.Position == i {
			continue
		}
		if err := r.Place(ctx, column.ID, position.Placement{ParentID: boardID, Position: i}); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}
