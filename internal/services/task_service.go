package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-board.com/task-board/internal/constants"
	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/position"
	repository "task-board.com/task-board/internal/repositories"
)

type TaskService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewTaskService(store *repository.Store, logger *zap.Logger) *TaskService {
	return &TaskService{
		store:  store,
		logger: logger,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, columnID string) ([]model.Task, error) {
	if _, err := s.store.Columns().FindByID(ctx, columnID); err != nil {
		return nil, orNotFound(err, apperrors.ErrColumnNotFound)
	}
	return s.store.Tasks().ListByColumn(ctx, columnID)
}

func (s *TaskService) GetTask(ctx context.Context, id string) (*model.Task, error) {
	task, err := s.store.Tasks().FindByID(ctx, id)
	if err != nil {
		return nil, orNotFound(err, apperrors.ErrTaskNotFound)
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	dueDate, err := ParseDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Status:      constants.StatusTodo,
		Priority:    constants.PriorityMedium,
		DueDate:     dueDate,
		ColumnID:    in.ColumnID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Columns().FindByID(ctx, in.ColumnID); err != nil {
			return orNotFound(err, apperrors.ErrColumnNotFound)
		}

		max, err := tx.Tasks().MaxPosition(ctx, in.ColumnID)
		if err != nil {
			return err
		}
		plan := position.Insert(in.ColumnID, in.Position, max)
		if err := tx.Tasks().Shift(ctx, plan.Shifts...); err != nil {
			return err
		}

		task.Position = plan.Placement.Position
		return tx.Tasks().Create(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task created",
		zap.String("task_id", task.ID),
		zap.String("column_id", task.ColumnID),
		zap.Int("position", task.Position))
	return task, nil
}

// UpdateTask applies a partial update. Column and position changes go through
// the same shifting as MoveTask.
func (s *TaskService) UpdateTask(ctx context.Context, id string, in UpdateTaskInput) (*model.Task, error) {
	fields := map[string]interface{}{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Status != nil {
		fields["status"] = *in.Status
	}
	if in.Priority != nil {
		fields["priority"] = *in.Priority
	}
	if in.DueDate != nil {
		dueDate, err := ParseDueDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		fields["due_date"] = dueDate
	}

	var task *model.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks().FindByID(ctx, id)
		if err != nil {
			return orNotFound(err, apperrors.ErrTaskNotFound)
		}

		if len(fields) > 0 {
			if err := tx.Tasks().Update(ctx, id, fields); err != nil {
				return orNotFound(err, apperrors.ErrTaskNotFound)
			}
		}

		columnChanged := in.ColumnID != nil && *in.ColumnID != task.ColumnID
		if columnChanged || in.Position != nil {
			target := task.ColumnID
			if in.ColumnID != nil {
				target = *in.ColumnID
			}
			if err := moveTask(ctx, tx, task, target, in.Position); err != nil {
				return err
			}
		}

		task, err = tx.Tasks().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) MoveTask(ctx context.Context, id, columnID string, to int) (*model.Task, error) {
	var task *model.Task
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		task, err = tx.Tasks().FindByID(ctx, id)
		if err != nil {
			return orNotFound(err, apperrors.ErrTaskNotFound)
		}
		if err := moveTask(ctx, tx, task, columnID, &to); err != nil {
			return err
		}

		task, err = tx.Tasks().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("task moved",
		zap.String("task_id", id),
		zap.String("column_id", task.ColumnID),
		zap.Int("position", task.Position))
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		task, err := tx.Tasks().FindByID(ctx, id)
		if err != nil {
			return orNotFound(err, apperrors.ErrTaskNotFound)
		}
		if err := tx.Tasks().Delete(ctx, id); err != nil {
			return orNotFound(err, apperrors.ErrTaskNotFound)
		}

		plan := position.Remove(task.ColumnID, task.Position)
		return tx.Tasks().Shift(ctx, plan.Shifts...)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("task deleted", zap.String("task_id", id))
	return nil
}

// moveTask relocates task to columnID. A nil position appends to the target
// column. It must run inside the transaction that read task.
func moveTask(ctx context.Context, tx *repository.Store, task *model.Task, columnID string, to *int) error {
	if columnID != task.ColumnID {
		if _, err := tx.Columns().FindByID(ctx, columnID); err != nil {
			return orNotFound(err, apperrors.ErrTargetColumnNotFound)
		}
	}

	max, err := tx.Tasks().MaxPosition(ctx, columnID)
	if err != nil {
		return err
	}

	target := position.Placement{ParentID: columnID, Position: position.NextPosition(max)}
	if to != nil {
		target.Position = *to
	}

	from := position.Placement{ParentID: task.ColumnID, Position: task.Position}
	plan := position.Move(from, target, max)
	if !plan.Moves(from) {
		return nil
	}

	if err := tx.Tasks().Shift(ctx, plan.Shifts...); err != nil {
		return err
	}
	return orNotFound(tx.Tasks().Place(ctx, task.ID, plan.Placement), apperrors.ErrTaskNotFound)
}
