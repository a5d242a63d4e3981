package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"fmt"
	"naturekids/config"
	"naturekids/infras/kafka"
	"naturekids/infras/otel"
	"naturekids/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
)

// BookingEvent is the payload of booking.confirmed and booking.cancelled.
type BookingEvent struct {
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	ActivityID    int64     `json:"activity_id"`
	ActivityTitle string    `json:"activity_title"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Participants  int       `json:"participants"`
	TotalPrice    int64     `json:"total_price"`
	Status        string    `json:"status"`
	ChildName     string    `json:"child_name"`
	ParentName    string    `json:"parent_name"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transaction_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ReviewEvent struct {
	ReviewID   string    `json:"review_id"`
	ActivityID int64     `json:"activity_id"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	Rating     int       `json:"rating"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentOrphanedEvent reports an approved charge whose booking was never
// recorded, so the money can be returned by hand.
type PaymentOrphanedEvent struct {
	TransactionID string    `json:"transaction_id"`
	UserID        string    `json:"user_id"`
	ActivityID    int64     `json:"activity_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Reason        string    `json:"reason"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type RewardEvent struct {
	RewardID   string    `json:"reward_id"`
	UserID     string    `json:"user_id"`
	RewardType string    `json:"reward_type"`
	Completed  int       `json:"completed"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	// Publish sends one event keyed by key; the topic doubles as the event type.
	Publish(ctx context.Context, topic, key string, payload any) error
}

type kafkaPublisher struct {
	client kafka.Client
	otel   otel.Otel
}

type noopPublisher struct{}

func New(cfg *config.Config, client kafka.Client, otel otel.Otel) Publisher {
	if !cfg.Kafka.Enable || client == nil {
		log.Info().Msg("kafka disabled, domain events are dropped")

		return noopPublisher{}
	}

	return &kafkaPublisher{client: client, otel: otel}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic, key string, payload any) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("topic", topic)

	err = p.client.SendMessages(ctx, topic, kafka.Message{Key: key, EventType: topic, Value: payload})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}

	return nil
}

func (noopPublisher) Publish(_ context.Context, topic, key string, _ any) error {
	log.Debug().Str("topic", topic).Str("key", key).Msg("event dropped")

	return nil
}
