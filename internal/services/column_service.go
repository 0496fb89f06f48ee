package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/internal/models"
	"task-board.com/task-board/internal/position"
	repository "task-board.com/task-board/internal/repositories"
)

type ColumnService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewColumnService(store *repository.Store, logger *zap.Logger) *ColumnService {
	return &ColumnService{
		store:  store,
		logger: logger,
	}
}

func (s *ColumnService) ListColumns(ctx context.Context, boardID string) ([]model.Column, error) {
	if _, err := s.store.Boards().FindByID(ctx, boardID); err != nil {
		return nil, orNotFound(err, apperrors.ErrBoardNotFound)
	}
	return s.store.Columns().ListByBoard(ctx, boardID)
}

func (s *ColumnService) CreateColumn(ctx context.Context, boardID string, in CreateColumnInput) (*model.Column, error) {
	now := time.Now().UTC()
	column := &model.Column{
		ID:        uuid.NewString(),
		Name:      in.Name,
		BoardID:   boardID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Boards().FindByID(ctx, boardID); err != nil {
			return orNotFound(err, apperrors.ErrBoardNotFound)
		}

		max, err := tx.Columns().MaxPosition(ctx, boardID)
		if err != nil {
			return err
		}
		plan := position.Insert(boardID, in.Position, max)
		if err := tx.Columns().Shift(ctx, plan.Shifts...); err != nil {
			return err
		}

		column.Position = plan.Placement.Position
		return tx.Columns().Create(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("column created",
		zap.String("column_id", column.ID),
		zap.String("board_id", boardID),
		zap.Int("position", column.Position))
	return column, nil
}

// UpdateColumn renames and/or repositions a column. When boardID is set the
// column must belong to that board.
func (s *ColumnService) UpdateColumn(ctx context.Context, boardID, id string, in UpdateColumnInput) (*model.Column, error) {
	var column *model.Column
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		column, err = findColumn(ctx, tx, boardID, id)
		if err != nil {
			return err
		}

		if in.Name != nil {
			if err := tx.Columns().Update(ctx, id, map[string]interface{}{"name": *in.Name}); err != nil {
				return orNotFound(err, apperrors.ErrColumnNotFound)
			}
		}
		if in.Position != nil {
			if err := moveColumn(ctx, tx, column, *in.Position); err != nil {
				return err
			}
		}

		column, err = tx.Columns().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return column, nil
}

// DeleteColumn refuses to delete a column that still holds tasks.
func (s *ColumnService) DeleteColumn(ctx context.Context, boardID, id string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		column, err := findColumn(ctx, tx, boardID, id)
		if err != nil {
			return err
		}

		count, err := tx.Tasks().CountByColumn(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperrors.ErrColumnHasTasks
		}

		if err := tx.Columns().Delete(ctx, id); err != nil {
			return orNotFound(err, apperrors.ErrColumnNotFound)
		}
		plan := position.Remove(column.BoardID, column.Position)
		return tx.Columns().Shift(ctx, plan.Shifts...)
	})
	if err != nil {
		return err
	}

	s.logger.Debug("column deleted", zap.String("column_id", id))
	return nil
}

func (s *ColumnService) ReorderColumn(ctx context.Context, id string, to int) (*model.Column, error) {
	var column *model.Column
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		var err error
		column, err = findColumn(ctx, tx, "", id)
		if err != nil {
			return err
		}
		if err := moveColumn(ctx, tx, column, to); err != nil {
			return err
		}

		column, err = tx.Columns().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("column reordered",
		zap.String("column_id", id),
		zap.Int("position", column.Position))
	return column, nil
}

func findColumn(ctx context.Context, tx *repository.Store, boardID, id string) (*model.Column, error) {
	var (
		column *model.Column
		err    error
	)
	if boardID == "" {
		column, err = tx.Columns().FindByID(ctx, id)
	} else {
		column, err = tx.Columns().FindInBoard(ctx, boardID, id)
	}
	if err != nil {
		return nil, orNotFound(err, apperrors.ErrColumnNotFound)
	}
	return column, nil
}

// moveColumn must run inside the transaction that read column.
func moveColumn(ctx context.Context, tx *repository.Store, column *model.Column, to int) error {
	max, err := tx.Columns().MaxPosition(ctx, column.BoardID)
	if err != nil {
		return err
	}

	from := position.Placement{ParentID: column.BoardID, Position: column.Position}
	plan := position.Move(from, position.Placement{ParentID: column.BoardID, Position: to}, max)
	if !plan.Moves(from) {
		return nil
	}

	if err := tx.Columns().Shift(ctx, plan.Shifts...); err != nil {
		return err
	}
	return orNotFound(tx.Columns().Place(ctx, column.ID, plan.Placement), apperrors.ErrColumnNotFound)
}
