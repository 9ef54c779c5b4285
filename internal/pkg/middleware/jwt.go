package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/swastha/internal/pkg/authz"
	"github.com/piresc/swastha/internal/pkg/constants"
	jwtpkg "github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/utils"
)

// JWTAuthMiddleware verifies the bearer token and stores its claims on the context.
// A missing header is "unauthorized"; a present but unusable token is "invalid_token".
func JWTAuthMiddleware(config models.JWTConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return utils.UnauthorizedResponse(c, models.ErrUnauthorized.Error())
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
				return utils.UnauthorizedResponse(c, models.ErrInvalidToken.Error())
			}

			claims, err := jwtpkg.ValidateToken(strings.TrimSpace(tokenString), config.Secret)
			if err != nil {
				if errors.Is(err, models.ErrUnauthorized) {
					return utils.UnauthorizedResponse(c, models.ErrUnauthorized.Error())
				}
				return utils.UnauthorizedResponse(c, models.ErrInvalidToken.Error())
			}

			c.Set(constants.CtxKeyClaims, claims)
			c.Set(constants.CtxKeyUserID, claims.UserID)
			c.Set(constants.CtxKeyRole, claims.Role)
			SetUserID(c, claims.UserID)

			return next(c)
		}
	}
}

// RequireRoles lets the request through only when the authenticated role is allowed
func RequireRoles(allowed ...models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := authz.Authorize(ClaimsFromContext(c), allowed...); err != nil {
				return utils.HandleError(c, err)
			}
			return next(c)
		}
	}
}

// ClaimsFromContext returns the claims stored by JWTAuthMiddleware, or nil
func ClaimsFromContext(c echo.Context) *jwtpkg.Claims {
	claims, _ := c.Get(constants.CtxKeyClaims).(*jwtpkg.Claims)
	return claims
}
