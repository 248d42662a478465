package models

import "time"

// Communication channels and directions.
const (
	ChannelSMS   = "sms"
	ChannelEmail = "email"

	DirectionOutbound = "outbound"
	DirectionInbound  = "inbound"
)

// Communication statuses.
const (
	CommunicationStatusQueued = "queued"
	CommunicationStatusSent   = "sent"
	CommunicationStatusFailed = "failed"
)

// CommunicationLog records every message sent or received on any channel,
// keyed to an application when one is known.
type CommunicationLog struct {
	ID            uint   `gorm:"primarykey"`
	ApplicationID string `gorm:"type:uuid;index"`
	Channel       string `gorm:"not null"`
	Direction     string `gorm:"not null"`
	Recipient     string
	Subject       string
	Body          string
	Status        string `gorm:"default:'queued'"`
	ProviderID    string
	Error         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
