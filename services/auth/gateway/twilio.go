package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/piresc/swastha/internal/pkg/circuitbreaker"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
	nrpkg "github.com/piresc/swastha/internal/pkg/newrelic"
)

const twilioMessagesURL = "https://api.twilio.com/2010-04-01/Accounts/Messages.json"

// messageCreator is the part of the Twilio REST API the sender needs
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioSender delivers codes by SMS through the Twilio Messages API
type TwilioSender struct {
	api     messageCreator
	from    string
	ttl     time.Duration
	breaker *circuitbreaker.CircuitBreaker
}

// NewTwilioSender creates an SMS sender from config. ttl is quoted in the message body.
func NewTwilioSender(config models.TwilioConfig, ttl time.Duration) (*TwilioSender, error) {
	if config.AccountSID == "" || config.AuthToken == "" || config.FromNumber == "" {
		return nil, errors.New("missing Twilio credentials")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: config.AccountSID,
		Password: config.AuthToken,
	})

	return newTwilioSender(client.Api, config.FromNumber, ttl), nil
}

func newTwilioSender(api messageCreator, from string, ttl time.Duration) *TwilioSender {
	return &TwilioSender{api: api, from: from, ttl: ttl}
}

// WithBreaker stops calling Twilio while cb is open
func (s *TwilioSender) WithBreaker(cb *circuitbreaker.CircuitBreaker) *TwilioSender {
	s.breaker = cb
	return s
}

// SendOTP sends code to phone. Failures wrap models.ErrOTPDelivery.
func (s *TwilioSender) SendOTP(ctx context.Context, phone, code string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(phone)
	params.SetBody(s.body(code))

	var resp *twilioApi.ApiV2010Message
	send := func(ctx context.Context) error {
		return nrpkg.WithExternalSegment(ctx, "twilio", "CreateMessage", twilioMessagesURL, func() error {
			var err error
			resp, err = s.api.CreateMessage(params)
			return err
		})
	}

	var err error
	if s.breaker != nil {
		err = s.breaker.Execute(ctx, send)
	} else {
		err = send(ctx)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrOTPDelivery, err)
	}

	if resp != nil && resp.Sid != nil {
		logger.InfoCtx(ctx, "OTP SMS sent",
			logger.Masked("phone", phone),
			logger.String("sid", *resp.Sid),
		)
	}
	return nil
}

func (s *TwilioSender) body(code string) string {
	minutes := int(s.ttl.Minutes())
	if minutes < 1 {
		return fmt.Sprintf("Your Swastha verification code is %s.", code)
	}
	return fmt.Sprintf("Your Swastha verification code is %s. It expires in %d minutes.", code, minutes)
}
