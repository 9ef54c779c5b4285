package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/swastha/internal/pkg/middleware"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/services/workers/handler/http"
)

// Handler coordinates the worker registry HTTP handlers
type Handler struct {
	workerHandler *http.WorkerHandler
	cfg           *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(workerHandler *http.WorkerHandler, cfg *models.Config) *Handler {
	return &Handler{
		workerHandler: workerHandler,
		cfg:           cfg,
	}
}

// RegisterRoutes registers the worker registry routes. Every route needs a session.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	workerGroup := e.Group("/workers", middleware.JWTAuthMiddleware(h.cfg.JWT))

	// Worker self service
	self := middleware.RequireRoles(models.RoleWorker)
	workerGroup.PUT("/me", h.workerHandler.UpsertMe, self)
	workerGroup.GET("/me", h.workerHandler.GetMe, self)

	// Doctor lookups
	doctor := middleware.RequireRoles(models.RoleDoctor)
	workerGroup.GET("", h.workerHandler.ListWorkers, doctor)
	workerGroup.GET("/:id", h.workerHandler.GetWorker, doctor)
}
