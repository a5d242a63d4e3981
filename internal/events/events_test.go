package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"naturekids/config"
	kafkaMocks "naturekids/infras/kafka/mocks"
	"naturekids/infras/kafka"
	"naturekids/infras/otel/mocks"
	"naturekids/internal/events"
	"naturekids/shared/constant"
)

func TestPublisher_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	publisher := events.New(&config.Config{}, client, mocks.NewOtel())

	require.NoError(t, publisher.Publish(context.Background(), constant.TopicBookingConfirmed, "b1", events.BookingEvent{}))
}

func TestPublisher_Kafka(t *testing.T) {
	cfg := &config.Config{}
	cfg.Kafka.Enable = true

	payload := events.BookingEvent{BookingID: "b1", Status: "upcoming"}

	tests := []struct {
		name      string
		setupMock func(client *kafkaMocks.MockClient)
		wantErr   bool
	}{
		{
			name: "sent",
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().
					SendMessages(gomock.Any(), constant.TopicBookingConfirmed, kafka.Message{
						Key: "b1", EventType: constant.TopicBookingConfirmed, Value: payload,
					}).
					Return(nil)
			},
		},
		{
			name: "broker failure",
			setupMock: func(client *kafkaMocks.MockClient) {
				client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("no brokers"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := kafkaMocks.NewMockClient(ctrl)
			tt.setupMock(client)

			err := events.New(cfg, client, mocks.NewOtel()).Publish(context.Background(), constant.TopicBookingConfirmed, "b1", payload)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}
