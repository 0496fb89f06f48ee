package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-board.com/task-board/internal/data_models"
	middleware "task-board.com/task-board/internal/http/middlewares"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/services"
)

func (h *Handler) ListBoards(c echo.Context) error {
	boards, err := h.boards.ListBoards(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, boards)
}

func (h *Handler) GetBoard(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.ownership.CheckBoard(ctx, middleware.UserID(c), id); err != nil {
		return err
	}

	board, err := h.boards.GetBoard(ctx, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, board)
}

func (h *Handler) CreateBoard(c echo.Context) error {
	var req dto.CreateBoardRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateCreateBoardRequest(&req); err != nil {
		return err
	}

	board, err := h.boards.CreateBoard(c.Request().Context(), middleware.UserID(c), services.CreateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, board)
}

func (h *Handler) UpdateBoard(c echo.Context) error {
	var req dto.UpdateBoardRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateBoardRequest(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	if err := h.ownership.CheckBoard(ctx, middleware.UserID(c), id); err != nil {
		return err
	}

	board, err := h.boards.UpdateBoard(ctx, id, services.UpdateBoardInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, board)
}

func (h *Handler) DeleteBoard(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.ownership.CheckBoard(ctx, middleware.UserID(c), id); err != nil {
		return err
	}
	if err := h.boards.DeleteBoard(ctx, id); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "board deleted")
}
