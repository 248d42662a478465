// Package notifier implements the durable outbox for side effects of the
// intake pipeline. Rows are written in the same transaction as the
// primary write; the worker in cmd/notifier relays them to the message
// queue and performs the sends. Failures here are observable and
// retryable but never surface to the HTTP caller.
package notifier

import (
	"time"

	"boreal/internal/models"

	"gorm.io/gorm"
)

// ContactPayload is the crm_contact message body.
type ContactPayload struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	ApplicationID string `json:"applicationId"`
}

// SMSPayload is the sms_missing_docs message body.
type SMSPayload struct {
	Phone         string `json:"phone"`
	BusinessName  string `json:"businessName"`
	ApplicationID string `json:"applicationId"`
}

// EnqueueCRMContact records a contact create/merge side effect.
func EnqueueCRMContact(tx *gorm.DB, p ContactPayload) error {
	return enqueue(tx, p.ApplicationID, models.OutboxKindCRMContact, models.JSON{
		"firstName":     p.FirstName,
		"lastName":      p.LastName,
		"email":         p.Email,
		"phone":         p.Phone,
		"applicationId": p.ApplicationID,
	})
}

// EmailPayload is the email message body.
type EmailPayload struct {
	To            string `json:"to"`
	Subject       string `json:"subject"`
	Body          string `json:"body"`
	ApplicationID string `json:"applicationId"`
}

// EnqueueEmail records an outbound email side effect.
func EnqueueEmail(tx *gorm.DB, p EmailPayload) error {
	return enqueue(tx, p.ApplicationID, models.OutboxKindEmail, models.JSON{
		"to":            p.To,
		"subject":       p.Subject,
		"body":          p.Body,
		"applicationId": p.ApplicationID,
	})
}

// EnqueueMissingDocsSMS records the missing-documents SMS side effect.
func EnqueueMissingDocsSMS(tx *gorm.DB, p SMSPayload) error {
	return enqueue(tx, p.ApplicationID, models.OutboxKindSMSMissingDocs, models.JSON{
		"phone":         p.Phone,
		"businessName":  p.BusinessName,
		"applicationId": p.ApplicationID,
	})
}

func enqueue(tx *gorm.DB, applicationID, kind string, payload models.JSON) error {
	return tx.Create(&models.OutboxMessage{
		ApplicationID: applicationID,
		Kind:          kind,
		Payload:       payload,
		Status:        models.OutboxStatusPending,
		NextAttemptAt: time.Now(),
	}).Error
}
