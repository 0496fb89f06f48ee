package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"task-board.com/task-board/internal/constants"
	apperrors "task-board.com/task-board/internal/errors"
	model "task-board.com/task-board/internal/models"
	repository "task-board.com/task-board/internal/repositories"
)

type BoardService struct {
	store  *repository.Store
	logger *zap.Logger
}

func NewBoardService(store *repository.Store, logger *zap.Logger) *BoardService {
	return &BoardService{
		store:  store,
		logger: logger,
	}
}

func (s *BoardService) ListBoards(ctx context.Context, userID string) ([]model.Board, error) {
	return s.store.Boards().ListByUser(ctx, userID)
}

func (s *BoardService) GetBoard(ctx context.Context, id string) (*model.Board, error) {
	board, err := s.store.Boards().FindDetailed(ctx, id)
	if err != nil {
		return nil, orNotFound(err, apperrors.ErrBoardNotFound)
	}
	return board, nil
}

// CreateBoard stores the board and its default columns in one transaction.
// The owner must already exist; the caller resolves it from the session.
func (s *BoardService) CreateBoard(ctx context.Context, ownerID string, in CreateBoardInput) (*model.Board, error) {
	if ownerID == "" {
		return nil, apperrors.ErrOwnerRequired
	}

	now := time.Now().UTC()
	board := &model.Board{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Color:       constants.DefaultBoardColor,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Color != nil && *in.Color != "" {
		board.Color = *in.Color
	}
	for i, name := range constants.DefaultColumns {
		board.Columns = append(board.Columns, model.Column{
			ID:        uuid.NewString(),
			Name:      name,
			Position:  i,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users().FindByID(ctx, ownerID); err != nil {
			return orNotFound(err, apperrors.ErrUserNotFound)
		}
		return tx.Boards().Create(ctx, board)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("board created", zap.String("board_id", board.ID), zap.String("user_id", ownerID))
	return board, nil
}

func (s *BoardService) UpdateBoard(ctx context.Context, id string, in UpdateBoardInput) (*model.Board, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Color != nil {
		fields["color"] = *in.Color
	}

	var board *model.Board
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Boards().FindByID(ctx, id); err != nil {
			return orNotFound(err, apperrors.ErrBoardNotFound)
		}
		if len(fields) > 0 {
			if err := tx.Boards().Update(ctx, id, fields); err != nil {
				return orNotFound(err, apperrors.ErrBoardNotFound)
			}
		}

		var err error
		board, err = tx.Boards().FindDetailed(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return board, nil
}

func (s *BoardService) DeleteBoard(ctx context.Context, id string) error {
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		return orNotFound(tx.Boards().Delete(ctx, id), apperrors.ErrBoardNotFound)
	})
	if err != nil {
		return err
	}

	s.logger.Info("board deleted", zap.String("board_id", id))
	return nil
}
