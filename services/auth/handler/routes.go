package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/piresc/swastha/internal/pkg/middleware"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/pkg/ratelimit"
	"github.com/piresc/swastha/services/auth/handler/http"
)

// Handler coordinates the auth service HTTP handlers
type Handler struct {
	authHandler *http.AuthHandler
	ipLimiter   ratelimit.Limiter
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers. ipLimiter may be nil.
func NewHandler(
	authHandler *http.AuthHandler,
	ipLimiter ratelimit.Limiter,
	cfg *models.Config,
) *Handler {
	return &Handler{
		authHandler: authHandler,
		ipLimiter:   ipLimiter,
		cfg:         cfg,
	}
}

// JWTMiddleware returns the bearer token middleware for protected routes
func (h *Handler) JWTMiddleware() echo.MiddlewareFunc {
	return middleware.JWTAuthMiddleware(h.cfg.JWT)
}

// RegisterRoutes registers the OTP login and session routes
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Public routes
	var otpMiddleware []echo.MiddlewareFunc
	if h.ipLimiter != nil {
		otpMiddleware = append(otpMiddleware, middleware.IPRateLimiterMiddleware(h.ipLimiter, h.cfg.OTP.IPRateLimit))
	}
	otpGroup := e.Group("/otp", otpMiddleware...)
	otpGroup.POST("/request", h.authHandler.RequestOTP)
	otpGroup.POST("/verify", h.authHandler.VerifyOTP)

	// Protected routes
	e.GET("/me", h.authHandler.Me,
		h.JWTMiddleware(),
		middleware.RequireRoles(models.RoleWorker, models.RoleDoctor),
	)
}
