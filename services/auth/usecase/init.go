package usecase

import (
	"time"

	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/pkg/ratelimit"
	"github.com/piresc/swastha/internal/utils"
	"github.com/piresc/swastha/services/auth"
)

type AuthUC struct {
	otpRepo   auth.OTPRepo
	userRepo  auth.UserRepo
	sender    auth.OTPSender
	publisher auth.EventPublisher
	limiter   ratelimit.Limiter
	cfg       *models.Config

	generateCode func() (string, error)
	nowF         func() time.Time
}

// NewAuthUC creates a new auth usecase instance. limiter bounds issuance per phone.
func NewAuthUC(
	otpRepo auth.OTPRepo,
	userRepo auth.UserRepo,
	sender auth.OTPSender,
	publisher auth.EventPublisher,
	limiter ratelimit.Limiter,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		otpRepo:      otpRepo,
		userRepo:     userRepo,
		sender:       sender,
		publisher:    publisher,
		limiter:      limiter,
		cfg:          cfg,
		generateCode: utils.GenerateOTP,
		nowF:         time.Now,
	}
}

// WithClock overrides the time source
func (u *AuthUC) WithClock(now func() time.Time) *AuthUC {
	u.nowF = now
	return u
}
