package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
	middleware "task-board.com/task-board/internal/http/middlewares"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/services"
)

func (h *Handler) ListColumns(c echo.Context) error {
	ctx := c.Request().Context()
	boardID := c.Param("id")

	if err := h.ownership.CheckBoard(ctx, middleware.UserID(c), boardID); err != nil {
		return err
	}

	columns, err := h.columns.ListColumns(ctx, boardID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, columns)
}

// CreateColumn serves both POST /boards/:id/columns and POST /columns; the
// latter carries the board id in the body.
func (h *Handler) CreateColumn(c echo.Context) error {
	var req dto.CreateColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if boardID := c.Param("id"); boardID != "" {
		req.BoardID = boardID
	}
	if req.BoardID == "" {
		return apperrors.Validation("boardId is required")
	}
	if err := validators.ValidateCreateColumnRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	if err := h.ownership.CheckBoard(ctx, middleware.UserID(c), req.BoardID); err != nil {
		return err
	}

	column, err := h.columns.CreateColumn(ctx, req.BoardID, services.CreateColumnInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, column)
}

func (h *Handler) UpdateColumn(c echo.Context) error {
	var req dto.UpdateColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateColumnRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	boardID, columnID, err := h.columnScope(c)
	if err != nil {
		return err
	}

	column, err := h.columns.UpdateColumn(ctx, boardID, columnID, services.UpdateColumnInput{
		Name:     req.Name,
		Position: req.Position,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, column)
}

func (h *Handler) DeleteColumn(c echo.Context) error {
	boardID, columnID, err := h.columnScope(c)
	if err != nil {
		return err
	}
	if err := h.columns.DeleteColumn(c.Request().Context(), boardID, columnID); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "column deleted")
}

func (h *Handler) ReorderColumn(c echo.Context) error {
	var req dto.ReorderColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateReorderColumnRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.ownership.CheckColumn(ctx, middleware.UserID(c), id); err != nil {
		return err
	}

	column, err := h.columns.ReorderColumn(ctx, id, *req.Position)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, column)
}

// columnScope resolves the column addressed by either /boards/:id/columns/:columnId
// or /columns/:id and checks that the caller owns it. The board id is empty
// for the flat route.
func (h *Handler) columnScope(c echo.Context) (string, string, error) {
	ctx := c.Request().Context()
	userID := middleware.UserID(c)

	if columnID := c.Param("columnId"); columnID != "" {
		boardID := c.Param("id")
		if err := h.ownership.CheckBoard(ctx, userID, boardID); err != nil {
			return "", "", err
		}
		return boardID, columnID, nil
	}

	columnID := c.Param("id")
	if err := h.ownership.CheckColumn(ctx, userID, columnID); err != nil {
		return "", "", err
	}
	return "", columnID, nil
}
