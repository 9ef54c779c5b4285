package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/swastha/internal/pkg/models"
)

// Claims is the session payload. The role claim is what authorization decides on.
type Claims struct {
	UserID string      `json:"id"`
	Role   models.Role `json:"role"`
	Phone  string      `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for user valid for config.TTL()
// starting at now. It returns the token and its unix expiry.
func GenerateToken(user *models.User, config models.JWTConfig, now time.Time) (string, int64, error) {
	if config.Secret == "" {
		return "", 0, errors.New("jwt secret is not configured")
	}
	if user == nil || user.ID == "" || !user.Role.Valid() {
		return "", 0, errors.New("cannot sign token for incomplete user")
	}

	expiresAt := now.Add(config.TTL())
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		Phone:  user.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    config.Issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.Secret))
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt.Unix(), nil
}

// ValidateToken checks signature, algorithm and expiry. exp is required. An
// empty token yields models.ErrUnauthorized, anything else unusable yields
// models.ErrInvalidToken.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, models.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, models.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", models.ErrInvalidToken)
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing id or role claim", models.ErrInvalidToken)
	}

	return claims, nil
}
