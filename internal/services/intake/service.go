// Package intake implements the application submission pipeline:
// payload normalization, business/application persistence, expected
// document creation and outbox enqueueing.
package intake

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"boreal/internal/models"
	"boreal/internal/services/docreq"
	"boreal/internal/services/notifier"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	resolver *docreq.Resolver
}

func NewService(db *gorm.DB, resolver *docreq.Resolver) *Service {
	return &Service{db: db, resolver: resolver}
}

// Create persists a normalized submission: business lookup-or-create,
// application insert, expected-document rows and outbox side effects,
// all in one transaction. Multiple applications may share a contact
// email; that is a product decision, not an oversight.
func (s *Service) Create(ctx context.Context, sub *Submission) (*Result, error) {
	if err := validateRequiredGroups(sub); err != nil {
		return nil, err
	}

	var result *Result
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		business, err := lookupOrCreateBusiness(tx, sub)
		if err != nil {
			return err
		}

		appID, reused, err := s.resolveApplicationID(tx, sub)
		if err != nil {
			return err
		}
		if reused {
			// Idempotent retry with a client-supplied id; return the
			// existing application untouched.
			var existing models.Application
			if err := tx.First(&existing, "id = ?", appID).Error; err != nil {
				return err
			}
			result = &Result{
				ApplicationID: existing.ID,
				ExternalID:    existing.ExternalID,
				Status:        existing.Status,
				Business:      business,
				Reused:        true,
			}
			return nil
		}

		app := buildApplication(appID, business.ID, sub)
		if err := tx.Create(app).Error; err != nil {
			if isUniqueViolation(err) {
				// Duplicate-key on insert is non-fatal: a replayed client
				// id lost a race past the count check, so the row already
				// exists along with its checklist and outbox entries. Log
				// and return the winner untouched.
				log.Printf("intake: duplicate key creating application %s, reusing existing row: %v", appID, err)
				var existing models.Application
				if err := tx.First(&existing, "id = ?", appID).Error; err != nil {
					return err
				}
				result = &Result{
					ApplicationID: existing.ID,
					ExternalID:    existing.ExternalID,
					Status:        existing.Status,
					Business:      business,
					Reused:        true,
				}
				return nil
			}
			return fmt.Errorf("failed to create application: %w", err)
		}

		if err := s.createExpectedDocuments(tx, app); err != nil {
			return err
		}
		if err := enqueueSideEffects(tx, app, sub); err != nil {
			return err
		}

		result = &Result{
			ApplicationID: app.ID,
			ExternalID:    app.ExternalID,
			Status:        app.Status,
			Business:      business,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("intake: application %s created for business %d (%s)",
		result.ApplicationID, result.Business.ID, result.Business.Name)
	return result, nil
}

func validateRequiredGroups(sub *Submission) error {
	if sub.RequestedAmount <= 0 {
		return &FieldError{Field: "requestedAmount", Message: "funding amount is required"}
	}
	name := strings.TrimSpace(sub.BusinessName)
	if name == "" {
		return &FieldError{Field: "businessName", Message: "business name is required"}
	}
	if len(name) < 2 {
		return &FieldError{Field: "businessName", Message: "business name must be at least 2 characters"}
	}
	if sub.Email == "" {
		return &FieldError{Field: "email", Message: "contact email is required"}
	}
	return nil
}

// lookupOrCreateBusiness reuses an existing business by exact normalized
// name, creating one otherwise. The unique index on normalized_name makes
// the pattern safe under concurrency: a constraint violation on insert is
// the dedup signal and triggers a re-read.
func lookupOrCreateBusiness(tx *gorm.DB, sub *Submission) (*models.Business, error) {
	name := strings.TrimSpace(sub.BusinessName)
	normalized := models.NormalizeBusinessName(name)

	var existing models.Business
	err := tx.Where("normalized_name = ?", normalized).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	business := &models.Business{
		Name:           name,
		NormalizedName: normalized,
		EntityType:     sub.EntityType,
		Industry:       sub.Industry,
		Address:        sub.Address,
		City:           sub.City,
		State:          sub.State,
		PostalCode:     sub.PostalCode,
		TaxID:          sub.TaxID,
	}
	if err := tx.Create(business).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race to a concurrent submission; reuse its row.
			var winner models.Business
			if err := tx.Where("normalized_name = ?", normalized).First(&winner).Error; err != nil {
				return nil, err
			}
			return &winner, nil
		}
		return nil, fmt.Errorf("failed to create business: %w", err)
	}
	return business, nil
}

// resolveApplicationID honors a syntactically valid client-supplied UUID
// (idempotent retry support) and generates a server UUID otherwise. The
// reused flag reports that the client id already names a persisted row.
func (s *Service) resolveApplicationID(tx *gorm.DB, sub *Submission) (string, bool, error) {
	if sub.ClientApplicationID != "" {
		if parsed, err := uuid.Parse(sub.ClientApplicationID); err == nil {
			id := parsed.String()
			var n int64
			if err := tx.Model(&models.Application{}).Where("id = ?", id).Count(&n).Error; err != nil {
				return "", false, err
			}
			return id, n > 0, nil
		}
		log.Printf("intake: ignoring malformed client application id %q", sub.ClientApplicationID)
	}
	return uuid.NewString(), false, nil
}

func buildApplication(id string, businessID uint, sub *Submission) *models.Application {
	return &models.Application{
		ID:               id,
		ExternalID:       fmt.Sprintf("APP-%d-%s", time.Now().Unix(), strings.ToUpper(id[:8])),
		BusinessID:       businessID,
		Status:           models.ApplicationStatusDraft,
		Stage:            models.StageNew,
		RequestedAmount:  sub.RequestedAmount,
		UseOfFunds:       sub.UseOfFunds,
		Country:          sub.Country,
		ProductCategory:  sub.ProductCategory,
		ContactFirstName: sub.FirstName,
		ContactLastName:  sub.LastName,
		ContactEmail:     sub.Email,
		ContactPhone:     sub.Phone,
		PartnerFirstName: sub.PartnerFirstName,
		PartnerLastName:  sub.PartnerLastName,
		PartnerEmail:     sub.PartnerEmail,
		MonthsInBusiness: sub.MonthsInBusiness,
		MonthlyRevenue:   sub.MonthlyRevenue,
		FormData:         sub.Raw,
	}
}

func (s *Service) createExpectedDocuments(tx *gorm.DB, app *models.Application) error {
	for _, req := range s.resolver.Resolve(app.ProductCategory) {
		row := &models.ExpectedDocument{
			ApplicationID: app.ID,
			Key:           req.Key,
			Label:         req.Label,
			Required:      req.Required,
			Months:        req.Months,
		}
		if err := tx.Create(row).Error; err != nil {
			return fmt.Errorf("failed to create expected document %s: %w", req.Key, err)
		}
	}
	return nil
}

func enqueueSideEffects(tx *gorm.DB, app *models.Application, sub *Submission) error {
	if err := notifier.EnqueueCRMContact(tx, notifier.ContactPayload{
		FirstName:     sub.FirstName,
		LastName:      sub.LastName,
		Email:         sub.Email,
		Phone:         sub.Phone,
		ApplicationID: app.ID,
	}); err != nil {
		return err
	}

	if sub.PartnerEmail != "" {
		if err := notifier.EnqueueCRMContact(tx, notifier.ContactPayload{
			FirstName:     sub.PartnerFirstName,
			LastName:      sub.PartnerLastName,
			Email:         sub.PartnerEmail,
			ApplicationID: app.ID,
		}); err != nil {
			return err
		}
	}

	if sub.DocumentsUploaded == 0 && sub.Phone != "" {
		if err := notifier.EnqueueMissingDocsSMS(tx, notifier.SMSPayload{
			Phone:         sub.Phone,
			BusinessName:  sub.BusinessName,
			ApplicationID: app.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

// isUniqueViolation matches both the raw postgres 23505 and the
// dialect-translated form some drivers surface.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
