package models

import "time"

// Outbox message kinds handled by the notifier worker.
const (
	OutboxKindCRMContact     = "crm_contact"
	OutboxKindSMSMissingDocs = "sms_missing_docs"
	OutboxKindEmail          = "email"
)

// Outbox message statuses.
const (
	OutboxStatusPending   = "pending"
	OutboxStatusPublished = "published"
	OutboxStatusSent      = "sent"
	OutboxStatusFailed    = "failed"
)

// OutboxMessage is a durable side-effect record written in the same
// transaction as the primary write it belongs to. The notifier worker
// relays pending rows to the message queue and records the outcome, so
// secondary-effect failures are observable and retryable without ever
// touching the HTTP response of the primary write.
type OutboxMessage struct {
	ID            uint   `gorm:"primarykey"`
	ApplicationID string `gorm:"type:uuid;index"`
	Kind          string `gorm:"not null;index"`
	Payload       JSON   `gorm:"type:jsonb"`
	Status        string `gorm:"default:'pending';index"`
	Attempts      int
	NextAttemptAt time.Time
	LastError     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
