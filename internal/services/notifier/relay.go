package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/streadway/amqp"
)

// QueueName is the RabbitMQ queue notifications flow through.
const QueueName = "boreal.notifications"

// Envelope is the wire shape published to the queue.
type Envelope struct {
	ID            uint            `json:"id"`
	ApplicationID string          `json:"applicationId"`
	Kind          string          `json:"kind"`
	Payload       json.RawMessage `json:"payload"`
}

// Relay moves due outbox rows onto the message queue.
type Relay struct {
	store   *Store
	channel *amqp.Channel
}

func NewRelay(store *Store, channel *amqp.Channel) (*Relay, error) {
	if _, err := channel.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return nil, err
	}
	return &Relay{store: store, channel: channel}, nil
}

// Run polls until the context is cancelled.
func (r *Relay) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := r.RunOnce(ctx); err != nil {
				log.Printf("outbox relay error: %v", err)
			} else if n > 0 {
				log.Printf("outbox relay published %d messages", n)
			}
		}
	}
}

// RunOnce claims one batch of due rows and publishes them.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	return r.store.ClaimDue(ctx, 50, func(m Message) error {
		body, err := json.Marshal(Envelope{
			ID:            m.ID,
			ApplicationID: m.ApplicationID,
			Kind:          m.Kind,
			Payload:       m.Payload,
		})
		if err != nil {
			return err
		}
		return r.channel.Publish("", QueueName, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		})
	})
}
