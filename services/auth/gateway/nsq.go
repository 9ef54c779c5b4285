package gateway

import (
	"context"

	"github.com/piresc/swastha/internal/pkg/constants"
	"github.com/piresc/swastha/internal/pkg/models"
	"github.com/piresc/swastha/internal/pkg/retry"
)

// publisher is satisfied by *nsq.Producer
type publisher interface {
	Publish(topic string, message interface{}) error
}

// NSQPublisher publishes auth events to NSQ
type NSQPublisher struct {
	producer publisher
	retrier  *retry.Retrier
}

// NewNSQPublisher creates an event publisher on producer. A nil retrier
// publishes once.
func NewNSQPublisher(producer publisher, retrier *retry.Retrier) *NSQPublisher {
	return &NSQPublisher{producer: producer, retrier: retrier}
}

// PublishUserRegistered publishes event on the user registered topic
func (p *NSQPublisher) PublishUserRegistered(ctx context.Context, event *models.UserRegisteredEvent) error {
	if p.retrier == nil {
		return p.producer.Publish(constants.TopicUserRegistered, event)
	}
	return p.retrier.Execute(ctx, func(context.Context) error {
		return p.producer.Publish(constants.TopicUserRegistered, event)
	})
}

// NoopPublisher drops events. Used when no NSQ daemon is configured.
type NoopPublisher struct{}

// PublishUserRegistered does nothing
func (NoopPublisher) PublishUserRegistered(context.Context, *models.UserRegisteredEvent) error {
	return nil
}
