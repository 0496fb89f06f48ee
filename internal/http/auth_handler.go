package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "task-board.com/task-board/internal/data_models"
	apperrors "task-board.com/task-board/internal/errors"
	middleware "task-board.com/task-board/internal/http/middlewares"
	"task-board.com/task-board/internal/http/validators"
	"task-board.com/task-board/internal/services"
)

const magicLinkRequested = "if the address belongs to an account, a sign-in link has been issued"

func (h *Handler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		return err
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}

func (h *Handler) Me(c echo.Context) error {
	user, err := h.auth.Me(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateUpdateProfileRequest(&req); err != nil {
		return err
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.UserID(c), services.UpdateProfileInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, user)
}

func (h *Handler) Logout(c echo.Context) error {
	if err := h.auth.Logout(c.Request().Context(), middleware.Claims(c)); err != nil {
		return err
	}
	return respondMessage(c, http.StatusOK, "logged out")
}

// RequestMagicLink answers the same way whether or not a link was issued, so
// the response does not reveal which addresses have an account.
func (h *Handler) RequestMagicLink(c echo.Context) error {
	var req dto.MagicLinkRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if err := validators.ValidateMagicLinkRequest(&req); err != nil {
		return err
	}

	link, err := h.auth.RequestMagicLink(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	if link == nil {
		return respondMessage(c, http.StatusOK, magicLinkRequested)
	}

	h.logger.Debug("magic link issued", zap.Time("expires_at", link.ExpiresAt))
	return c.JSON(http.StatusOK, Envelope{
		Data:       link,
		Message:    magicLinkRequested,
		StatusCode: http.StatusOK,
		Timestamp:  time.Now().UTC(),
	})
}

func (h *Handler) VerifyMagicLink(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return apperrors.Validation("token is required")
	}

	result, err := h.auth.ConsumeMagicLink(c.Request().Context(), token)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, result)
}
