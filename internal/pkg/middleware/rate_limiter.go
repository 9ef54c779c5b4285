package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/ratelimit"
	"github.com/piresc/swastha/internal/utils"
)

// IPRateLimiterMiddleware throttles requests per client IP. Limiter
// failures are logged and the request is let through.
func IPRateLimiterMiddleware(limiter ratelimit.Limiter, limit int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter, err := limiter.Allow(c.Request().Context(), ip)
			if err != nil {
				logger.WarnCtx(c.Request().Context(), "Rate limiter unavailable",
					logger.String("client_ip", ip),
					logger.Err(err))
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit))
			if !allowed {
				c.Response().Header().Set("X-RateLimit-Remaining", "0")
				return utils.TooManyRequestsResponse(c, retryAfter)
			}

			return next(c)
		}
	}
}
