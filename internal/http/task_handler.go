package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
	middleware "task-board.com/task-board/internal/http/middlewares"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/services"
)

func (h *Handler) ListTasks(c echo.Context) error {
	ctx := c.Request().Context()
	columnID := c.QueryParam("columnId")
	if columnID == "" {
		return apperrors.Validation("columnId query parameter is required")
	}

	if err := h.ownership.CheckColumn(ctx, middleware.UserID(c), columnID); err != nil {
		return err
	}

	tasks, err := h.tasks.ListTasks(ctx, columnID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.ownership.CheckTask(ctx, middleware.UserID(c), id); err != nil {
		return err
	}

	task, err := h.tasks.GetTask(ctx, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.ownership.CheckColumn(ctx, middleware.UserID(c), req.ColumnID); err != nil {
		return err
	}

	task, err := h.tasks.CreateTask(ctx, services.CreateTaskInput{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		Position:    req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	userID := middleware.UserID(c)
	if err := h.ownership.CheckTask(ctx, userID, id); err != nil {
		return err
	}
	if req.ColumnID != nil {
		if err := h.checkTargetColumn(ctx, userID, *req.ColumnID); err != nil {
			return err
		}
	}

	task, err := h.tasks.UpdateTask(ctx, id, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		ColumnID:    req.ColumnID,
		Position:    req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

func (h *Handler) MoveTask(c echo.Context) error {
	var req dto.MoveTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateMoveTaskRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	userID := middleware.UserID(c)
	if err := h.ownership.CheckTask(ctx, userID, id); err != nil {
		return err
	}
	if err := h.checkTargetColumn(ctx, userID, req.ColumnID); err != nil {
		return err
	}

	task, err := h.tasks.MoveTask(ctx, id, req.ColumnID, *req.Position)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.ownership.CheckTask(ctx, middleware.UserID(c), id); err != nil {
		return err
	}
	if err := h.tasks.DeleteTask(ctx, id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "task deleted")
}

// checkTargetColumn reports a missing destination column as such rather than
// as a missing column of the request path.
func (h *Handler) checkTargetColumn(ctx context.Context, userID, columnID string) error {
	err := h.ownership.CheckColumn(ctx, userID, columnID)
	if errors.Is(err, apperrors.ErrColumnNotFound) {
		return apperrors.ErrTargetColumnNotFound
	}
	return err
}
