package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "task-board.com/task-board/internal/errors"
	repository "task-board.com/task-board/internal/repositories"
)

type RepairReport struct {
	Boards  int
	Columns int
	Fixed   int
}

// RepairService renumbers sibling positions that drifted away from 0..n-1,
// e.g. after manual edits to the database.
type RepairService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewRepairService(store *repository.Store, logger *zap.Logger) *RepairService {
	return &RepairService{
		store:  store,
		logger: logger,
	}
}

func (s *RepairService) RepairAll(ctx context.Context) (RepairReport, error) {
	var report RepairReport

	boardIDs, err := s.store.Boards().ListIDs(ctx)
	if err != nil {
		return report, err
	}

	for _, boardID := range boardIDs {
		fixed, columns, err := s.RepairBoard(ctx, boardID)
		if err != nil {
			return report, err
		}
		report.Boards++
		report.Columns += columns
		report.Fixed += fixed
	}
	return report, nil
}

// RepairBoard reindexes a board's columns and the tasks of each column in one
// transaction. It returns the number of rows moved and the columns visited.
func (s *RepairService) RepairBoard(ctx context.Context, boardID string) (int, int, error) {
	var fixed, visited int
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Boards().FindByID(ctx, boardID); err != nil {
			return orNotFound(err, apperrors.ErrBoardNotFound)
		}

		n, err := tx.Columns().Reindex(ctx, boardID)
		if err != nil {
			return err
		}
		fixed += n

		columns, err := tx.Columns().ListByBoard(ctx, boardID)
		if err != nil {
			return err
		}
		for _, column := range columns {
			n, err := tx.Tasks().Reindex(ctx, column.ID)
			if err != nil {
				return err
			}
			fixed += n
			visited++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	if fixed > 0 {
		s.logger.Warn("repaired board positions", zap.String("board_id", boardID), zap.Int("fixed", fixed))
	}
	return fixed, visited, nil
}
