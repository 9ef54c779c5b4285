package auth

import (
	"context"

	jwtpkg "github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/swastha/services/auth AuthUC

// AuthUC issues one-time codes and exchanges them for sessions
type AuthUC interface {
	// handle OTP
	RequestOTP(ctx context.Context, req *models.OTPRequest) error
	VerifyOTP(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error)

	// session issuer
	ResolveOrCreateUser(ctx context.Context, phone string, role models.Role) (*models.User, error)
	IssueToken(user *models.User) (string, int64, error)
	VerifyToken(token string) (*jwtpkg.Claims, error)
}
