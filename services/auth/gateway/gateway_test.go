package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piresc/swastha/internal/pkg/circuitbreaker"
	"github.com/piresc/swastha/internal/pkg/constants"
	"github.com/piresc/swastha/internal/pkg/logger"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/pkg/retry"
)

func TestConsoleSender_SendOTP(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	sender := NewConsoleSender(logger.NewFromZap(zap.New(core), "auth-service"))

	require.NoError(t, sender.SendOTP(context.Background(), "+919876543210", "123456"))

	entries := logs.FilterMessage("OTP issued").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "+919876543210", fields["phone"])
	assert.Equal(t, "123456", fields["code"])
}

type fakeMessageCreator struct {
	params *twilioApi.CreateMessageParams
	calls  int
	err    error
}

func (f *fakeMessageCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.calls++
	f.params = params
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestTwilioSender_SendOTP(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := &fakeMessageCreator{}
		sender := newTwilioSender(api, "+15005550006", 5*time.Minute)

		require.NoError(t, sender.SendOTP(context.Background(), "+919876543210", "123456"))
		require.NotNil(t, api.params)
		assert.Equal(t, "+919876543210", *api.params.To)
		assert.Equal(t, "+15005550006", *api.params.From)
		assert.Contains(t, *api.params.Body, "123456")
		assert.Contains(t, *api.params.Body, "5 minutes")
	})

	t.Run("API error wraps delivery failure", func(t *testing.T) {
		api := &fakeMessageCreator{err: errors.New("status 401")}
		sender := newTwilioSender(api, "+15005550006", 5*time.Minute)

		err := sender.SendOTP(context.Background(), "+919876543210", "123456")
		require.Error(t, err)
		assert.ErrorIs(t, err, models.ErrOTPDelivery)
	})

	t.Run("Open breaker skips API", func(t *testing.T) {
		api := &fakeMessageCreator{err: errors.New("status 503")}
		cb := circuitbreaker.New(circuitbreaker.Config{Name: "twilio", FailureThreshold: 2, Timeout: time.Hour},
			logger.NewFromZap(zap.NewNop(), "auth-service"))
		sender := newTwilioSender(api, "+15005550006", 5*time.Minute).WithBreaker(cb)

		for i := 0; i < 3; i++ {
			err := sender.SendOTP(context.Background(), "+919876543210", "123456")
			assert.ErrorIs(t, err, models.ErrOTPDelivery)
		}
		assert.Equal(t, 2, api.calls)
		assert.Equal(t, circuitbreaker.StateOpen, cb.State())
	})
}

func TestNewTwilioSender_RequiresCredentials(t *testing.T) {
	_, err := NewTwilioSender(models.TwilioConfig{AccountSID: "AC123"}, time.Minute)
	assert.Error(t, err)

	sender, err := NewTwilioSender(models.TwilioConfig{
		AccountSID: "AC123",
		AuthToken:  "secret",
		FromNumber: "+15005550006",
	}, time.Minute)
	require.NoError(t, err)
	assert.NotNil(t, sender)
}

type recordingProducer struct {
	topic    string
	message  interface{}
	calls    int
	failures int
}

func (p *recordingProducer) Publish(topic string, message interface{}) error {
	p.calls++
	p.topic = topic
	p.message = message
	if p.calls <= p.failures {
		return errors.New("nsqd down")
	}
	return nil
}

func TestNSQPublisher_PublishUserRegistered(t *testing.T) {
	event := &models.UserRegisteredEvent{
		UserID: "id-1",
		Role:   models.RoleWorker,
		Phone:  "+919876543210",
	}
	retrier := retry.New(retry.Config{MaxRetries: 2, BaseDelay: time.Millisecond, Multiplier: 2},
		logger.NewFromZap(zap.NewNop(), "auth-service"))

	t.Run("Success", func(t *testing.T) {
		producer := &recordingProducer{}
		pub := NewNSQPublisher(producer, nil)

		require.NoError(t, pub.PublishUserRegistered(context.Background(), event))
		assert.Equal(t, constants.TopicUserRegistered, producer.topic)
		assert.Equal(t, event, producer.message)
	})

	t.Run("Error without retrier", func(t *testing.T) {
		producer := &recordingProducer{failures: 1}
		pub := NewNSQPublisher(producer, nil)

		assert.Error(t, pub.PublishUserRegistered(context.Background(), event))
		assert.Equal(t, 1, producer.calls)
	})

	t.Run("Recovers with retrier", func(t *testing.T) {
		producer := &recordingProducer{failures: 2}
		pub := NewNSQPublisher(producer, retrier)

		require.NoError(t, pub.PublishUserRegistered(context.Background(), event))
		assert.Equal(t, 3, producer.calls)
	})

	t.Run("Gives up with retrier", func(t *testing.T) {
		producer := &recordingProducer{failures: 5}
		pub := NewNSQPublisher(producer, retrier)

		assert.Error(t, pub.PublishUserRegistered(context.Background(), event))
		assert.Equal(t, 3, producer.calls)
	})
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishUserRegistered(context.Background(), &models.UserRegisteredEvent{}))
}
