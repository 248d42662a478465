package notifier

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// maxAttempts bounds retries before a message is parked as failed.
const maxAttempts = 5

// Message is an outbox row as seen by the worker.
type Message struct {
	ID            uint
	ApplicationID string
	Kind          string
	Payload       json.RawMessage
	Attempts      int
}

// Store is the worker-side view of the outbox, on plain database/sql so
// the notifier binary does not need the ORM stack.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ClaimDue locks up to limit due pending rows and hands each to publish.
// Rows whose publish succeeds are marked published; the rest get a
// bumped attempt count and a backed-off next attempt. SKIP LOCKED keeps
// concurrent workers from double-claiming.
func (s *Store) ClaimDue(ctx context.Context, limit int, publish func(Message) error) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, application_id, kind, payload, attempts
		FROM outbox_messages
		WHERE status = 'pending' AND next_attempt_at <= now()
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`, limit)
	if err != nil {
		return 0, err
	}

	var msgs []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ApplicationID, &m.Kind, &m.Payload, &m.Attempts); err != nil {
			rows.Close()
			return 0, err
		}
		msgs = append(msgs, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}

	published := 0
	for _, m := range msgs {
		if err := publish(m); err != nil {
			if uerr := s.recordFailureTx(ctx, tx, m, err); uerr != nil {
				return published, uerr
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE outbox_messages
			SET status = 'published', updated_at = now()
			WHERE id = $1`, m.ID); err != nil {
			return published, err
		}
		published++
	}

	return published, tx.Commit()
}

func (s *Store) recordFailureTx(ctx context.Context, tx *sql.Tx, m Message, cause error) error {
	attempts := m.Attempts + 1
	status := "pending"
	if attempts >= maxAttempts {
		status = "failed"
	}
	_, err := tx.ExecContext(ctx, `
		UPDATE outbox_messages
		SET attempts = $2, status = $3, last_error = $4,
		    next_attempt_at = $5, updated_at = now()
		WHERE id = $1`,
		m.ID, attempts, status, cause.Error(), time.Now().Add(Backoff(attempts)))
	return err
}

// MarkSent records a successful delivery by the consumer.
func (s *Store) MarkSent(ctx context.Context, id uint) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE outbox_messages
		SET status = 'sent', updated_at = now()
		WHERE id = $1`, id)
	return err
}

// MarkFailed parks a message the consumer could not deliver.
func (s *Store) MarkFailed(ctx context.Context, id uint, cause error) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE outbox_messages
		SET status = 'failed', last_error = $2, updated_at = now()
		WHERE id = $1`, id, cause.Error())
	return err
}

// UpsertContact merges a CRM contact by email; repeat applications
// refresh the existing row instead of duplicating it.
func (s *Store) UpsertContact(ctx context.Context, p ContactPayload) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (first_name, last_name, email, phone, source, application_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'application', $5, now(), now())
		ON CONFLICT (email) DO UPDATE
		SET first_name = EXCLUDED.first_name,
		    last_name = EXCLUDED.last_name,
		    phone = EXCLUDED.phone,
		    application_id = EXCLUDED.application_id,
		    updated_at = now()`,
		p.FirstName, p.LastName, p.Email, p.Phone, p.ApplicationID)
	if err != nil {
		return fmt.Errorf("failed to upsert contact %s: %w", p.Email, err)
	}
	return nil
}

// LogSMS records an outbound worker-sent SMS in the communication log.
func (s *Store) LogSMS(ctx context.Context, applicationID, to, body, status, providerID, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO communication_logs
			(application_id, channel, direction, recipient, body, status, provider_id, error, created_at, updated_at)
		VALUES ($1, 'sms', 'outbound', $2, $3, $4, $5, $6, now(), now())`,
		applicationID, to, body, status, providerID, errMsg)
	return err
}

// LogEmail records an outbound worker-sent email in the communication log.
func (s *Store) LogEmail(ctx context.Context, applicationID, to, subject, body, status, providerID, errMsg string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO communication_logs
			(application_id, channel, direction, recipient, subject, body, status, provider_id, error, created_at, updated_at)
		VALUES ($1, 'email', 'outbound', $2, $3, $4, $5, $6, $7, now(), now())`,
		applicationID, to, subject, body, status, providerID, errMsg)
	return err
}

// Backoff returns the exponential delay before the next attempt.
func Backoff(attempts int) time.Duration {
	d := time.Minute
	for i := 1; i < attempts; i++ {
		d *= 2
		if d >= 30*time.Minute {
			return 30 * time.Minute
		}
	}
	return d
}
