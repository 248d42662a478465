package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"boreal/internal/models"
	"boreal/internal/services/messaging"

	"github.com/streadway/amqp"
)

// retry retries a function up to attempts times with linear backoff.
func retry[T any](attempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// Consumer drains the notification queue and performs the actual sends.
type Consumer struct {
	store *Store
	sms   messaging.SMSClient
	email messaging.EmailClient
}

func NewConsumer(store *Store, sms messaging.SMSClient, email messaging.EmailClient) *Consumer {
	return &Consumer{store: store, sms: sms, email: email}
}

// Run consumes deliveries until the channel closes or ctx is cancelled.
func (c *Consumer) Run(ctx context.Context, channel *amqp.Channel) error {
	deliveries, err := channel.Consume(QueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("notification channel closed")
			}
			c.handle(ctx, delivery)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, delivery amqp.Delivery) {
	var env Envelope
	if err := json.Unmarshal(delivery.Body, &env); err != nil {
		log.Printf("notifier: dropping malformed delivery: %v", err)
		_ = delivery.Ack(false)
		return
	}

	if err := c.dispatch(ctx, env); err != nil {
		log.Printf("notifier: %s message %d failed permanently: %v", env.Kind, env.ID, err)
		if merr := c.store.MarkFailed(ctx, env.ID, err); merr != nil {
			log.Printf("notifier: failed to mark message %d failed: %v", env.ID, merr)
		}
	} else {
		if merr := c.store.MarkSent(ctx, env.ID); merr != nil {
			log.Printf("notifier: failed to mark message %d sent: %v", env.ID, merr)
		}
	}

	// At-least-once: the outbox row carries the outcome, the queue does
	// not need to redeliver.
	_ = delivery.Ack(false)
}

func (c *Consumer) dispatch(ctx context.Context, env Envelope) error {
	switch env.Kind {
	case models.OutboxKindCRMContact:
		var p ContactPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("malformed crm_contact payload: %w", err)
		}
		_, err := retry(3, func() (struct{}, error) {
			return struct{}{}, c.store.UpsertContact(ctx, p)
		})
		return err

	case models.OutboxKindSMSMissingDocs:
		var p SMSPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("malformed sms payload: %w", err)
		}
		body := messaging.MissingDocsSMS(p.BusinessName)
		providerID, err := retry(3, func() (string, error) {
			return c.sms.Send(ctx, p.Phone, body)
		})
		status := "sent"
		errMsg := ""
		if err != nil {
			status = "failed"
			errMsg = err.Error()
		}
		if lerr := c.store.LogSMS(ctx, p.ApplicationID, p.Phone, body, status, providerID, errMsg); lerr != nil {
			log.Printf("notifier: failed to log sms for %s: %v", p.ApplicationID, lerr)
		}
		return err

	case models.OutboxKindEmail:
		var p EmailPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return fmt.Errorf("malformed email payload: %w", err)
		}
		providerID, err := retry(3, func() (string, error) {
			return c.email.Send(ctx, p.To, p.Subject, p.Body)
		})
		status := "sent"
		errMsg := ""
		if err != nil {
			status = "failed"
			errMsg = err.Error()
		}
		if lerr := c.store.LogEmail(ctx, p.ApplicationID, p.To, p.Subject, p.Body, status, providerID, errMsg); lerr != nil {
			log.Printf("notifier: failed to log email for %s: %v", p.ApplicationID, lerr)
		}
		return err

	default:
		return fmt.Errorf("unknown outbox kind %q", env.Kind)
	}
}
