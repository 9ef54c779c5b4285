package auth

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/swastha/services/auth OTPRepo,UserRepo

// OTPRepo holds at most one pending code per phone
type OTPRepo interface {
	// SaveOTP replaces any pending code for otp.Phone
	SaveOTP(ctx context.Context, otp *models.OTP) error
	// ConsumeOTP reports whether code matches the pending, unexpired code
	// for phone. A match deletes the entry; a miss counts an attempt.
	ConsumeOTP(ctx context.Context, phone, code string) (bool, error)
}

// UserRepo stores identities keyed by (phone, role)
type UserRepo interface {
	// FindOrCreateUser returns the stored user for candidate's phone and
	// role, inserting candidate first if none exists. created reports the insert.
	FindOrCreateUser(ctx context.Context, candidate *models.User) (user *models.User, created bool, err error)
}
