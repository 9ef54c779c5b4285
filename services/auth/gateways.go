package auth

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/swastha/services/auth OTPSender,EventPublisher

// OTPSender delivers a code to the phone owner
type OTPSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// EventPublisher announces auth events to other services
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error
}
