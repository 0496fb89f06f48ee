package repository

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"task-board.com/task-board/internal/position"
)

// shiftPositions applies one range shift to the rows of table whose
// parentColumn equals the shift's parent.
func shiftPositions(ctx context.Context, db *gorm.DB, model interface{}, parentColumn string, s position.Shift) (int64, error) {
	if s.Delta == 0 {
		return 0, nil
	}

	query := db.WithContext(ctx).Model(model).
		Where(parentColumn+" = ? AND position >= ?", s.ParentID, s.Min)
	if s.Max != position.Unbounded {
		query = query.Where("position <= ?", s.Max)
	}

	res := query.UpdateColumn("position", gorm.Expr("position + ?", s.Delta))
	if res.Error != nil {
		return 0, fmt.Errorf("shift %s: %w", s, res.Error)
	}
	return res.RowsAffected, nil
}

func maxPosition(ctx context.Context, db *gorm.DB, model interface{}, parentColumn, parentID string) (*int, error) {
	var max sql.NullInt64
	err := db.WithContext(ctx).Model(model).
		Where(parentColumn+" = ?", parentID).
		Select("MAX(position)").
		Row().Scan(&max)
	if err != nil {
		return nil, fmt.Errorf("max position: %w", err)
	}
	if !max.Valid {
		return nil, nil
	}
	v := int(max.Int64)
	return &v, nil
}
