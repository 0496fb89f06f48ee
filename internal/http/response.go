package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "task-board.com/task-board/internal/errors"
)

const kindInternal = "INTERNAL_ERROR"

type Envelope struct {
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
	StatusCode int         `json:"statusCode"`
	Timestamp  time.Time   `json:"timestamp"`
}

func respond(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{
		Data:       data,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	})
}

func respondMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{
		Message:    message,
		StatusCode: status,
		Timestamp:  time.Now().UTC(),
	})
}

// NewErrorHandler renders every error as an Envelope. Outside production the
// message of unexpected errors is passed through to ease debugging.
func NewErrorHandler(logger *zap.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, kind, message := classify(err, production)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
		}

		body := Envelope{
			Error:      kind,
			Message:    message,
			StatusCode: status,
			Timestamp:  time.Now().UTC(),
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}

func classify(err error, production bool) (int, string, string) {
	if appErr, ok := apperrors.As(err); ok {
		return appErr.StatusCode, string(appErr.Kind), appErr.Message
	}

	if he, ok := err.(*echo.HTTPError); ok {
		kind := kindInternal
		switch {
		case he.Code == http.StatusNotFound:
			kind = string(apperrors.KindNotFound)
		case he.Code == http.StatusUnauthorized:
			kind = string(apperrors.KindUnauthenticated)
		case he.Code < http.StatusInternalServerError:
			kind = string(apperrors.KindInvalidOperation)
		}
		return he.Code, kind, fmt.Sprint(he.Message)
	}

	if production {
		return http.StatusInternalServerError, kindInternal, "internal server error"
	}
	return http.StatusInternalServerError, kindInternal, err.Error()
}
