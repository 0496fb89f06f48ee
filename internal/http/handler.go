package http

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-board.com/task-board/internal/errors"
	"task-board.com/task-board/internal/services"
)

type Services struct {
	Boards    *services.BoardService
	Columns   *services.ColumnService
	Tasks     *services.TaskService
	Auth      *services.AuthService
	Ownership *services.OwnershipService
	// Ping reports storage health for GET /health. Optional.
	Ping func(ctx context.Context) error
}

type Options struct {
	Production bool
	// MagicLinks registers the magic link routes and returns the link in the
	// response body. There is no delivery channel, so it is a debug aid.
	MagicLinks bool
}

type Handler struct {
	boards     *services.BoardService
	columns    *services.ColumnService
	tasks      *services.TaskService
	auth       *services.AuthService
	ownership  *services.OwnershipService
	ping       func(ctx context.Context) error
	logger     *zap.Logger
	production bool
	magicLinks bool
}

func NewHandler(svc Services, logger *zap.Logger, opts Options) *Handler {
	return &Handler{
		boards:     svc.Boards,
		columns:    svc.Columns,
		tasks:      svc.Tasks,
		auth:       svc.Auth,
		ownership:  svc.Ownership,
		ping:       svc.Ping,
		logger:     logger,
		production: opts.Production,
		magicLinks: opts.MagicLinks,
	}
}

func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return apperrors.ErrInvalidJSON
	}
	return nil
}
