// Package application manages the post-intake lifecycle: finalization,
// staff review actions and pipeline listings.
package application

import (
	"errors"
	"fmt"
	"log"
	"time"

	"boreal/internal/models"
	"boreal/internal/repositories"
	"boreal/internal/services/messaging"
	"boreal/internal/services/notifier"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidID     = errors.New("application id must be a valid UUID")
	ErrNotFound      = errors.New("application not found")
	ErrInvalidStatus = errors.New("invalid application status")
	// ErrNotFinalizable rejects finalize calls against applications that
	// have already left draft.
	ErrNotFinalizable = errors.New("application cannot be finalized from its current status")
)

type Service struct {
	apps repositories.ApplicationRepository
	// db is only needed for outbox writes; nil disables the
	// finalize confirmation email.
	db *gorm.DB
}

func NewService(apps repositories.ApplicationRepository, db *gorm.DB) *Service {
	return &Service{apps: apps, db: db}
}

// FinalizeResult is the PATCH response payload.
type FinalizeResult struct {
	models.ApplicationSummary
	ExpectedDocuments int64 `json:"expectedDocuments"`
	UploadedDocuments int64 `json:"uploadedDocuments"`
}

// Finalize transitions a draft application to submitted (or an explicit
// forward status), moves it to the In Review stage and computes lender
// readiness from the document checklist.
func (s *Service) Finalize(id string, explicitStatus string) (*FinalizeResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}

	app, err := s.apps.GetWithBusiness(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	target := explicitStatus
	if target == "" {
		target = models.ApplicationStatusSubmitted
	}
	if !models.IsValidStatus(target) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, target)
	}
	if app.Status != models.ApplicationStatusDraft || !models.CanTransition(app.Status, target) {
		return nil, ErrNotFinalizable
	}

	now := time.Now()
	app.Status = target
	app.Stage = models.StageInReview
	app.SubmittedAt = &now
	if err := s.apps.Update(app); err != nil {
		return nil, err
	}

	s.enqueueConfirmationEmail(app)

	return s.summarize(app)
}

// OverrideStatus is the explicit staff escape hatch from monotonic
// transitions: any valid status may be set, and the action is logged.
func (s *Service) OverrideStatus(id, status, stage string, staffEmail string) (*FinalizeResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}

	app, err := s.apps.GetWithBusiness(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	log.Printf("status override: application %s %s -> %s by %s", id, app.Status, status, staffEmail)
	app.Status = status
	if stage != "" {
		app.Stage = stage
	}
	if err := s.apps.Update(app); err != nil {
		return nil, err
	}

	return s.summarize(app)
}

// Get returns an application with its business preloaded.
func (s *Service) Get(id string) (*models.Application, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	app, err := s.apps.GetWithBusiness(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

// ExpectedDocuments returns the intake-time checklist for an application.
func (s *Service) ExpectedDocuments(id string) ([]models.ExpectedDocument, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidID
	}
	return s.apps.ExpectedDocuments(id)
}

// List returns pipeline summaries with readiness computed per row.
func (s *Service) List(filter repositories.ApplicationFilter) ([]models.ApplicationSummary, int64, error) {
	apps, total, err := s.apps.List(filter)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]models.ApplicationSummary, 0, len(apps))
	for i := range apps {
		res, err := s.summarize(&apps[i])
		if err != nil {
			return nil, 0, err
		}
		summaries = append(summaries, res.ApplicationSummary)
	}
	return summaries, total, nil
}

// enqueueConfirmationEmail records the submission-received email in the
// outbox. Failures only log; finalize already succeeded.
func (s *Service) enqueueConfirmationEmail(app *models.Application) {
	if s.db == nil || app.ContactEmail == "" {
		return
	}

	businessName := ""
	if app.Business != nil {
		businessName = app.Business.Name
	}
	subject, body := messaging.SubmissionReceivedEmail(app.ContactFirstName, businessName, app.ExternalID)

	if err := notifier.EnqueueEmail(s.db, notifier.EmailPayload{
		To:            app.ContactEmail,
		Subject:       subject,
		Body:          body,
		ApplicationID: app.ID,
	}); err != nil {
		log.Printf("finalize: failed to enqueue confirmation email for %s: %v", app.ID, err)
	}
}

func (s *Service) summarize(app *models.Application) (*FinalizeResult, error) {
	uploaded, err := s.apps.CountDocuments(app.ID)
	if err != nil {
		return nil, err
	}
	expected, err := s.apps.CountExpectedDocuments(app.ID)
	if err != nil {
		return nil, err
	}

	businessName := ""
	if app.Business != nil {
		businessName = app.Business.Name
	}

	return &FinalizeResult{
		ApplicationSummary: models.ApplicationSummary{
			ID:                app.ID,
			ExternalID:        app.ExternalID,
			Status:            app.Status,
			Stage:             app.Stage,
			BusinessID:        app.BusinessID,
			BusinessName:      businessName,
			RequestedAmount:   app.RequestedAmount,
			ContactEmail:      app.ContactEmail,
			IsReadyForLenders: expected > 0 && uploaded >= expected,
			SubmittedAt:       app.SubmittedAt,
			CreatedAt:         app.CreatedAt,
		},
		ExpectedDocuments: expected,
		UploadedDocuments: uploaded,
	}, nil
}
