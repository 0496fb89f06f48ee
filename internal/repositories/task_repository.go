package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/position"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &task, nil
}

func (r *TaskRepository) ListByColumn(ctx context.Context, columnID string) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CountByColumn(ctx context.Context, columnID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).Where("column_id = ?", columnID).Count(&count).Error
	return count, err
}

func (r *TaskRepository) MaxPosition(ctx context.Context, columnID string) (*int, error) {
	return maxPosition(ctx, r.db, &model.Task{}, "column_id", columnID)
}

func (r *TaskRepository) Shift(ctx context.Context, shifts ...position.Shift) error {
	for _, s := range shifts {
		if _, err := shiftPositions(ctx, r.db, &model.Task{}, "column_id", s); err != nil {
			return err
		}
	}
	return nil
}

// Place writes the final column and position of a task.
func (r *TaskRepository) Place(ctx context.Context, id string, p position.Placement) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"column_id": p.ParentID,
			"position":  p.Position,
		})
	if res.Error != nil {
		return fmt.Errorf("place task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Task{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("update task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Task{})
	if res.Error != nil {
		return fmt.Errorf("delete task: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// OwnerID returns the id of the user owning the board the task lives on.
func (r *TaskRepository) OwnerID(ctx context.Context, id string) (string, error) {
	var owners []string
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Joins("JOIN columns ON columns.id = tasks.column_id").
		Joins("JOIN boards ON boards.id = columns.board_id").
		Where("tasks.id = ?", id).
		Pluck("boards.user_id", &owners).Error
	if err != nil {
		return "", err
	}
	if len(owners) == 0 {
		return "", ErrNotFound
	}
	return owners[0], nil
}

func (r *TaskRepository) Reindex(ctx context.Context, columnID string) (int, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("column_id = ?", columnID).
		Order("position asc, created_at asc").
		Find(&tasks).Error
	if err != nil {
		return 0, err
	}

	fixed := 0
	for i, task := range tasks {
		if task.Position == i {
			continue
		}
		if err := r.Place(ctx, task.ID, position.Placement{ParentID: columnID, Position: i}); err != nil {
			return fixed, err
		}
		fixed++
	}
	return fixed, nil
}
