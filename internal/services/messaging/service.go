// Package messaging sends staff-initiated SMS and email and records
// every attempt in the communication log.
package messaging

import (
	"context"
	"log"

	"boreal/internal/models"
	"boreal/internal/repositories"
)

type Service struct {
	comms repositories.CommunicationRepository
	sms   SMSClient
	email EmailClient
}

func NewService(comms repositories.CommunicationRepository, sms SMSClient, email EmailClient) *Service {
	return &Service{comms: comms, sms: sms, email: email}
}

// SendSMS sends a text and logs the outcome. The log row persists even
// when the provider call fails, so every attempt is visible to staff.
func (s *Service) SendSMS(ctx context.Context, applicationID, to, body string) (*models.CommunicationLog, error) {
	entry := &models.CommunicationLog{
		ApplicationID: applicationID,
		Channel:       models.ChannelSMS,
		Direction:     models.DirectionOutbound,
		Recipient:     to,
		Body:          body,
		Status:        models.CommunicationStatusQueued,
	}
	if err := s.comms.Create(entry); err != nil {
		return nil, err
	}

	providerID, err := s.sms.Send(ctx, to, body)
	if err != nil {
		entry.Status = models.CommunicationStatusFailed
		entry.Error = err.Error()
		if uerr := s.comms.Update(entry); uerr != nil {
			log.Printf("failed to record sms failure: %v", uerr)
		}
		return entry, err
	}

	entry.Status = models.CommunicationStatusSent
	entry.ProviderID = providerID
	if err := s.comms.Update(entry); err != nil {
		log.Printf("failed to record sms success: %v", err)
	}
	return entry, nil
}

// SendEmail sends an email and logs the outcome, same contract as SendSMS.
func (s *Service) SendEmail(ctx context.Context, applicationID, to, subject, body string) (*models.CommunicationLog, error) {
	entry := &models.CommunicationLog{
		ApplicationID: applicationID,
		Channel:       models.ChannelEmail,
		Direction:     models.DirectionOutbound,
		Recipient:     to,
		Subject:       subject,
		Body:          body,
		Status:        models.CommunicationStatusQueued,
	}
	if err := s.comms.Create(entry); err != nil {
		return nil, err
	}

	providerID, err := s.email.Send(ctx, to, subject, body)
	if err != nil {
		entry.Status = models.CommunicationStatusFailed
		entry.Error = err.Error()
		if uerr := s.comms.Update(entry); uerr != nil {
			log.Printf("failed to record email failure: %v", uerr)
		}
		return entry, err
	}

	entry.Status = models.CommunicationStatusSent
	entry.ProviderID = providerID
	if err := s.comms.Update(entry); err != nil {
		log.Printf("failed to record email success: %v", err)
	}
	return entry, nil
}

// History lists communications recorded against an application.
func (s *Service) History(applicationID string) ([]models.CommunicationLog, error) {
	return s.comms.ListByApplication(applicationID)
}
