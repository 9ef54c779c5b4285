package gateway

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/logger"
)

// ConsoleSender writes codes to the service log instead of delivering them.
// Only for local and development environments.
type ConsoleSender struct {
	log *logger.ZapLogger
}

// NewConsoleSender creates a sender that logs through log
func NewConsoleSender(log *logger.ZapLogger) *ConsoleSender {
	return &ConsoleSender{log: log}
}

// SendOTP logs the code for the operator. Warn level keeps it visible
// with LOG_LEVEL=warn.
func (s *ConsoleSender) SendOTP(_ context.Context, phone, code string) error {
	s.log.Warn("OTP issued",
		logger.String("phone", phone),
		logger.String("code", code),
	)
	return nil
}
