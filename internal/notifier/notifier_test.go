package notifier_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/config"
	"naturekids/infras/kafka"
	kafkaMocks "naturekids/infras/kafka/mocks"
	"naturekids/internal/events"
	"naturekids/internal/notifier"
	"naturekids/shared/constant"
)

type recordingSender struct {
	notices []notifier.Notice
	err     error
}

func (s *recordingSender) Send(_ context.Context, notice notifier.Notice) error {
	if s.err != nil {
		return s.err
	}

	s.notices = append(s.notices, notice)

	return nil
}

func message(t *testing.T, topic string, event events.BookingEvent) kafkaGo.Message {
	t.Helper()

	msg, err := (&kafka.Message{Key: event.BookingID, EventType: topic, Value: event}).ToKafkaMessage()
	require.NoError(t, err)

	msg.Topic = topic

	return msg
}

func TestCompose(t *testing.T) {
	event := events.BookingEvent{
		BookingID:     "b1",
		ActivityTitle: "Forest Explorer Adventure",
		Date:          "2026-11-02",
		Time:          "9:00 AM",
		Participants:  3,
		TotalPrice:    1050,
		ChildName:     "Asha",
		ParentName:    "Ravi",
		Email:         "ravi@example.com",
		TransactionID: "TXN123",
	}

	notice, ok := notifier.Compose(constant.TopicBookingConfirmed, event)
	require.True(t, ok)
	assert.Equal(t, "ravi@example.com", notice.To)
	assert.Contains(t, notice.Subject, "confirmed")
	assert.Contains(t, notice.Body, "1050")
	assert.Contains(t, notice.Body, "TXN123")

	notice, ok = notifier.Compose(constant.TopicBookingCancelled, event)
	require.True(t, ok)
	assert.Contains(t, notice.Subject, "cancelled")

	_, ok = notifier.Compose(constant.TopicReviewSubmitted, event)
	assert.False(t, ok)
}

func TestHandle(t *testing.T) {
	event := events.BookingEvent{BookingID: "b1", Email: "p@example.com", ActivityTitle: "Bird Watching"}

	t.Run("confirmed booking is sent", func(t *testing.T) {
		sender := &recordingSender{}
		n := notifier.New(&config.Config{}, nil, sender)

		require.NoError(t, n.Handle(context.Background(), message(t, constant.TopicBookingConfirmed, event)))
		require.Len(t, sender.notices, 1)
		assert.Equal(t, "p@example.com", sender.notices[0].To)
	})

	t.Run("falls back to topic without header", func(t *testing.T) {
		sender := &recordingSender{}
		n := notifier.New(&config.Config{}, nil, sender)

		value, err := json.Marshal(event)
		require.NoError(t, err)

		msg := kafkaGo.Message{Topic: constant.TopicBookingCancelled, Value: value}

		require.NoError(t, n.Handle(context.Background(), msg))
		require.Len(t, sender.notices, 1)
		assert.Contains(t, sender.notices[0].Subject, "cancelled")
	})

	t.Run("malformed payload is skipped", func(t *testing.T) {
		sender := &recordingSender{}
		n := notifier.New(&config.Config{}, nil, sender)

		msg := kafkaGo.Message{Topic: constant.TopicBookingConfirmed, Value: []byte("{")}

		require.NoError(t, n.Handle(context.Background(), msg))
		assert.Empty(t, sender.notices)
	})

	t.Run("sender failure is returned for redelivery", func(t *testing.T) {
		sender := &recordingSender{err: errors.New("smtp down")}
		n := notifier.New(&config.Config{}, nil, sender)

		err := n.Handle(context.Background(), message(t, constant.TopicBookingConfirmed, event))
		assert.Error(t, err)
	})
}

func TestRun(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "naturekids-notifier"

	for _, topic := range notifier.Topics() {
		client.EXPECT().Consume(gomock.Any(), "naturekids-notifier", topic, gomock.Any()).Times(1)
	}

	n := notifier.New(cfg, client, notifier.NewLogSender())
	n.Run(context.Background())
}
