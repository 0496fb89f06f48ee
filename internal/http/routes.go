package http

import (
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	middleware "task-board.com/task-board/internal/http/middlewares"
)

func NewServer(h *Handler, rateLimitPerMinute int) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	Register(e, h, rateLimitPerMinute)
	return e
}

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.HTTPErrorHandler = NewErrorHandler(h.logger, h.production)

	e.Use(middleware.RequestLogger(h.logger))
	e.Use(echomw.Recover())
	e.Use(echomw.Secure())
	e.Use(echomw.BodyLimit("1M"))

	e.GET("/health", h.Health)

	api := e.Group("/api", middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	auth := api.Group("/auth")
	auth.POST("/login", h.Login)
	if h.magicLinks {
		auth.POST("/magic-link", h.RequestMagicLink)
		auth.GET("/magic-link/verify", h.VerifyMagicLink)
	}

	authenticated := middleware.Authenticate(h.auth)
	auth.GET("/me", h.Me, authenticated)
	auth.PUT("/profile", h.UpdateProfile, authenticated)
	auth.POST("/logout", h.Logout, authenticated)

	boards := api.Group("/boards", authenticated)
	boards.GET("", h.ListBoards)
	boards.POST("", h.CreateBoard)
	boards.GET("/:id", h.GetBoard)
	boards.PUT("/:id", h.UpdateBoard)
	boards.DELETE("/:id", h.DeleteBoard)
	boards.GET("/:id/columns", h.ListColumns)
	boards.POST("/:id/columns", h.CreateColumn)
	boards.PUT("/:id/columns/:columnId", h.UpdateColumn)
	boards.DELETE("/:id/columns/:columnId", h.DeleteColumn)

	columns := api.Group("/columns", authenticated)
	columns.POST("", h.CreateColumn)
	columns.PUT("/:id", h.UpdateColumn)
	columns.DELETE("/:id", h.DeleteColumn)
	columns.PATCH("/:id/reorder", h.ReorderColumn)

	tasks := api.Group("/tasks", authenticated)
	tasks.GET("", h.ListTasks)
	tasks.POST("", h.CreateTask)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.UpdateTask)
	tasks.DELETE("/:id", h.DeleteTask)
	tasks.PATCH("/:id/move", h.MoveTask)
}
