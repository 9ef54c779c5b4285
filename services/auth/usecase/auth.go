package usecase

import (
	"context"
	"fmt"

	jwtpkg "github.com/piresc/swastha/internal/pkg/jwt"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
	nrpkg "github.com/piresc/swastha/internal/pkg/newrelic"
)

// RequestOTP issues a fresh code for req.Phone, replacing any pending one,
// and hands it to the sender
func (u *AuthUC) RequestOTP(ctx context.Context, req *models.OTPRequest) error {
	if u.limiter != nil {
		allowed, retryAfter, err := u.limiter.Allow(ctx, req.Phone)
		if err != nil {
			logger.WarnCtx(ctx, "Phone rate limiter unavailable",
				logger.Masked("phone", req.Phone),
				logger.Err(err))
		} else if !allowed {
			return &models.RateLimitError{RetryAfter: retryAfter}
		}
	}

	code, err := u.generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate OTP: %w", err)
	}

	now := u.nowF()
	otp := &models.OTP{
		Phone:     req.Phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.OTP.TTL()),
	}
	if err := u.otpRepo.SaveOTP(ctx, otp); err != nil {
		return fmt.Errorf("failed to save OTP: %w", err)
	}

	fields := []logger.Field{logger.Masked("phone", req.Phone)}
	if req.Aadhar != "" {
		fields = append(fields, logger.Masked("aadhar", req.Aadhar))
	}
	logger.InfoCtx(ctx, "OTP requested", fields...)

	if err := u.sender.SendOTP(ctx, req.Phone, code); err != nil {
		return fmt.Errorf("failed to send OTP: %w", err)
	}

	return nil
}

// VerifyOTP consumes the pending code and, on a match, returns a session for
// the (phone, role) identity
func (u *AuthUC) VerifyOTP(ctx context.Context, req *models.VerifyRequest) (*models.AuthResponse, error) {
	var ok bool
	err := nrpkg.WithSegment(ctx, "OTPRepo.ConsumeOTP", func() error {
		var err error
		ok, err = u.otpRepo.ConsumeOTP(ctx, req.Phone, req.Code)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to verify OTP: %w", err)
	}
	if !ok {
		return nil, models.ErrInvalidOTP
	}

	user, err := u.ResolveOrCreateUser(ctx, req.Phone, req.Role)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := u.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.View(),
	}, nil
}

// ResolveOrCreateUser returns the user for (phone, role), creating it on first use
func (u *AuthUC) ResolveOrCreateUser(ctx context.Context, phone string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, &models.ValidationError{Field: "role", Reason: "unknown role"}
	}

	candidate := &models.User{
		ID:        models.NewUserID(role, phone),
		Role:      role,
		Phone:     phone,
		CreatedAt: u.nowF().UTC(),
	}

	user, created, err := u.userRepo.FindOrCreateUser(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if created {
		logger.InfoCtx(ctx, "User registered",
			logger.String("user_id", user.ID),
			logger.String("role", user.Role.String()))

		event := &models.UserRegisteredEvent{
			UserID:       user.ID,
			Role:         user.Role,
			Phone:        user.Phone,
			RegisteredAt: user.CreatedAt,
		}
		if err := u.publisher.PublishUserRegistered(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish user registered event",
				logger.String("user_id", user.ID),
				logger.Err(err))
		}
	}

	return user, nil
}

// IssueToken signs a session token for user
func (u *AuthUC) IssueToken(user *models.User) (string, int64, error) {
	token, expiresAt, err := jwtpkg.GenerateToken(user, u.cfg.JWT, u.nowF())
	if err != nil {
		return "", 0, fmt.Errorf("failed to generate token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyToken validates token and returns its claims
func (u *AuthUC) VerifyToken(token string) (*jwtpkg.Claims, error) {
	return jwtpkg.ValidateToken(token, u.cfg.JWT.Secret)
}
