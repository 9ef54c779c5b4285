// Package authz decides whether verified session claims may reach a route.
package authz

import (
	"github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/models"
)

// Authorize returns nil when claims carry one of the allowed roles.
// Nil claims mean the caller never authenticated.
func Authorize(claims *jwt.Claims, allowed ...models.Role) error {
	if claims == nil {
		return models.ErrUnauthorized
	}
	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}
	return models.ErrForbidden
}
