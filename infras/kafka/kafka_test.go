package kafka_test

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturekids/config"
	"naturekids/infras/kafka"
)

type bookingEvent struct {
	BookingID string `json:"booking_id"`
	Total     int64  `json:"total"`
}

func TestMessage_RoundTripThroughKafkaMessage(t *testing.T) {
	message := kafka.Message{
		Key:       "booking-1",
		EventType: "booking.confirmed",
		Value:     bookingEvent{BookingID: "booking-1", Total: 1050},
	}

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("booking-1"), msg.Key)
	assert.JSONEq(t, `{"booking_id":"booking-1","total":1050}`, string(msg.Value))
	assert.Equal(t, "booking.confirmed", kafka.EventType(msg))

	decoded, err := kafka.DecodeKafkaMessage[bookingEvent](msg)
	require.NoError(t, err)
	assert.Equal(t, bookingEvent{BookingID: "booking-1", Total: 1050}, decoded)
}

func TestMessage_Unmarshalable(t *testing.T) {
	message := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := message.ToKafkaMessage()
	assert.Error(t, err)
}

func TestDecodeKafkaMessage_Invalid(t *testing.T) {
	_, err := kafka.DecodeKafkaMessage[bookingEvent](kafkaGo.Message{Value: []byte("{")})
	assert.Error(t, err)
	assert.Empty(t, kafka.EventType(kafkaGo.Message{}))
}

func TestProvide_Disabled(t *testing.T) {
	assert.Nil(t, kafka.Provide(&config.Config{}))
}

func TestProvide_Enabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Brokers = []string{"localhost:9092"}

	client := kafka.Provide(cfg)
	require.NotNil(t, client)
	assert.NoError(t, client.Close())
}
