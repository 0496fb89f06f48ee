package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (h *Handler) Health(c echo.Context) error {
	if h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			h.logger.Warn("health check failed", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, Envelope{
				Error:      "UNAVAILABLE",
				Message:    "database unavailable",
				StatusCode: http.StatusServiceUnavailable,
				Timestamp:  time.Now().UTC(),
			})
		}
	}
	return respond(c, http.StatusOK, map[string]string{"status": "ok"})
}
