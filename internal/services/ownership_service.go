package services

import (
	"context"

	apperrors "task-board.com/task-board/internal/errors"
	repository "task-board.com/task-board/internal/repositories"
)

// OwnershipService answers whether a user may act on a board, column or task.
// The resource services do not call it; the HTTP layer does, before invoking
// them.
type OwnershipService struct {
	store *repository.Store
}

func NewOwnershipService(store *repository.Store) *OwnershipService {
	return &OwnershipService{store: store}
}

func (s *OwnershipService) CheckBoard(ctx context.Context, userID, boardID string) error {
	board, err := s.store.Boards().FindByID(ctx, boardID)
	if err != nil {
		return orNotFound(err, apperrors.ErrBoardNotFound)
	}
	return owns(userID, board.UserID)
}

func (s *OwnershipService) CheckColumn(ctx context.Context, userID, columnID string) error {
	owner, err := s.store.Columns().OwnerID(ctx, columnID)
	if err != nil {
		return orNotFound(err, apperrors.ErrColumnNotFound)
	}
	return owns(userID, owner)
}

func (s *OwnershipService) CheckTask(ctx context.Context, userID, taskID string) error {
	owner, err := s.store.Tasks().OwnerID(ctx, taskID)
	if err != nil {
		return orNotFound(err, apperrors.ErrTaskNotFound)
	}
	return owns(userID, owner)
}

func owns(userID, ownerID string) error {
	if userID == "" {
		return apperrors.ErrUnauthenticated
	}
	if userID != ownerID {
		return apperrors.ErrForbidden
	}
	return nil
}
