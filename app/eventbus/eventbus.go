package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Black-And-White-Club/frolf-stats/app/shared/observability/attr"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	nc "github.com/nats-io/nats.go"
)

const correlationIDKey = "correlation_id"

// HandlerFunc consumes the JSON payload of one message.
type HandlerFunc func(ctx context.Context, payload []byte) error

// EventBus publishes domain events and dispatches them to subscribers.
type EventBus interface {
	// Publish JSON-encodes payload and publishes it on topic.
	Publish(ctx context.Context, topic string, payload any) error
	// Subscribe registers handler for topic. Handlers start receiving when Run is called.
	Subscribe(name, topic string, handler HandlerFunc) error
	// Run blocks, dispatching messages until ctx is cancelled.
	Run(ctx context.Context) error
	Close() error
}

type eventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	router     *message.Router
	logger     *slog.Logger
	closeOnce  sync.Once
	closeErr   error
}

// NewNATSEventBus connects a watermill NATS publisher and subscriber to natsURL.
func NewNATSEventBus(natsURL string, logger *slog.Logger) (EventBus, error) {
	watermillLogger := watermill.NewSlogLogger(logger)
	marshaler := &nats.NATSMarshaler{}
	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.MaxReconnects(-1),
	}

	publisher, err := nats.NewPublisher(
		nats.PublisherConfig{
			URL:         natsURL,
			Marshaler:   marshaler,
			NatsOptions: options,
			JetStream:   nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		logger.Error("Failed to create Watermill publisher", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS publisher: %w", err)
	}

	subscriber, err := nats.NewSubscriber(
		nats.SubscriberConfig{
			URL:              natsURL,
			QueueGroupPrefix: "frolf-stats",
			Unmarshaler:      marshaler,
			NatsOptions:      options,
			JetStream:        nats.JetStreamConfig{Disabled: true},
		},
		watermillLogger,
	)
	if err != nil {
		publisher.Close()
		logger.Error("Failed to create Watermill subscriber", attr.Error(err))
		return nil, fmt.Errorf("failed to create NATS subscriber: %w", err)
	}

	return newEventBus(publisher, subscriber, logger)
}

// NewInProcessEventBus uses a watermill go channel. Used when no NATS URL is configured.
func NewInProcessEventBus(logger *slog.Logger) (EventBus, error) {
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermill.NewSlogLogger(logger))
	return newEventBus(pubsub, pubsub, logger)
}

func newEventBus(pub message.Publisher, sub message.Subscriber, logger *slog.Logger) (*eventBus, error) {
	router, err := message.NewRouter(message.RouterConfig{}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Watermill router: %w", err)
	}
	return &eventBus{
		publisher:  pub,
		subscriber: sub,
		router:     router,
		logger:     logger,
	}, nil
}

func (eb *eventBus) Publish(ctx context.Context, topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.SetContext(ctx)
	if id := attr.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(correlationIDKey, id)
	}

	if err := eb.publisher.Publish(topic, msg); err != nil {
		eb.logger.ErrorContext(ctx, "Failed to publish message",
			attr.String("topic", topic),
			attr.Error(err),
		)
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	eb.logger.InfoContext(ctx, "Message published",
		attr.ExtractCorrelationID(ctx),
		attr.String("topic", topic),
		attr.String("message_id", msg.UUID),
	)
	return nil
}

func (eb *eventBus) Subscribe(name, topic string, handler HandlerFunc) error {
	eb.router.AddNoPublisherHandler(name, topic, eb.subscriber, func(msg *message.Message) error {
		ctx := msg.Context()
		if id := msg.Metadata.Get(correlationIDKey); id != "" {
			ctx = attr.WithCorrelationID(ctx, id)
		}
		if err := handler(ctx, msg.Payload); err != nil {
			eb.logger.ErrorContext(ctx, "Subscriber failed",
				attr.ExtractCorrelationID(ctx),
				attr.String("handler", name),
				attr.String("topic", topic),
				attr.Error(err),
			)
			return err
		}
		return nil
	})
	return nil
}

func (eb *eventBus) Run(ctx context.Context) error {
	return eb.router.Run(ctx)
}

// Running is closed once the router has started its handlers.
func (eb *eventBus) Running() chan struct{} {
	return eb.router.Running()
}

func (eb *eventBus) Close() error {
	eb.closeOnce.Do(func() {
		if err := eb.router.Close(); err != nil {
			eb.closeErr = err
		}
		if err := eb.publisher.Close(); err != nil && eb.closeErr == nil {
			eb.closeErr = err
		}
		if any(eb.subscriber) != any(eb.publisher) {
			if err := eb.subscriber.Close(); err != nil && eb.closeErr == nil {
				eb.closeErr = err
			}
		}
	})
	return eb.closeErr
}
