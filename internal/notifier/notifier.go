package notifier

import (
	"context"
	"fmt"
	"naturekids/config"
	"naturekids/infras/kafka"
	"naturekids/internal/events"
	"naturekids/shared/constant"
	"sync"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notice is what a parent would be told about a booking change.
type Notice struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a notice. The default sender only logs it.
type Sender interface {
	Send(ctx context.Context, notice Notice) error
}

type logSender struct{}

func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(_ context.Context, notice Notice) error {
	log.Info().
		Str("to", notice.To).
		Str("subject", notice.Subject).
		Msg(notice.Body)

	return nil
}

type Notifier struct {
	cfg    *config.Config
	client kafka.Client
	sender Sender
}

func New(cfg *config.Config, client kafka.Client, sender Sender) *Notifier {
	return &Notifier{
		cfg:    cfg,
		client: client,
		sender: sender,
	}
}

// Topics lists the booking topics the notifier subscribes to.
func Topics() []string {
	return []string{constant.TopicBookingConfirmed, constant.TopicBookingCancelled}
}

// Run consumes every booking topic until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, topic := range Topics() {
		wg.Add(1)

		go func(topic string) {
			defer wg.Done()

			log.Info().Str("topic", topic).Msg("notifier subscribed")
			n.client.Consume(ctx, n.cfg.Kafka.ConsumerGroup, topic, n.Handle)
		}(topic)
	}

	wg.Wait()
}

// Handle turns one booking event into a parent notice. Unknown event types are
// acknowledged and skipped.
func (n *Notifier) Handle(ctx context.Context, msg kafkaGo.Message) error {
	eventType := kafka.EventType(msg)
	if eventType == constant.Empty {
		eventType = msg.Topic
	}

	event, err := kafka.DecodeKafkaMessage[events.BookingEvent](msg)
	if err != nil {
		// a payload that never decodes would block the partition forever
		log.Warn().Err(err).Str("topic", msg.Topic).Msg("dropping malformed booking event")

		return nil
	}

	notice, ok := Compose(eventType, event)
	if !ok {
		log.Debug().Str("eventType", eventType).Msg("no notice for event")

		return nil
	}

	if err := n.sender.Send(ctx, notice); err != nil {
		return fmt.Errorf("failed to send notice for booking %s: %w", event.BookingID, err)
	}

	return nil
}

func Compose(eventType string, event events.BookingEvent) (Notice, bool) {
	switch eventType {
	case constant.TopicBookingConfirmed:
		return Notice{
			To:      event.Email,
			Subject: "Booking confirmed: " + event.ActivityTitle,
			Body: fmt.Sprintf(
				"Hi %s, %s is booked for %s on %s at %s for %d participant(s). Total paid %d (transaction %s).",
				event.ParentName, event.ChildName, event.ActivityTitle, event.Date, event.Time,
				event.Participants, event.TotalPrice, event.TransactionID,
			),
		}, true
	case constant.TopicBookingCancelled:
		return Notice{
			To:      event.Email,
			Subject: "Booking cancelled: " + event.ActivityTitle,
			Body: fmt.Sprintf(
				"Hi %s, the booking for %s on %s at %s has been cancelled.",
				event.ParentName, event.ActivityTitle, event.Date, event.Time,
			),
		}, true
	default:
		return Notice{}, false
	}
}
