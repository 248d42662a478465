// Package document handles uploaded-file storage and metadata. Files
// live in object storage; only metadata rows live in postgres. A
// document satisfies an expected-document checklist entry by type
// equality, nothing stronger.
package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"boreal/internal/models"
	"boreal/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidApplicationID = errors.New("application id must be a valid UUID")
	ErrStorageUnavailable   = errors.New("object storage is not configured")
)

const downloadURLTTL = 15 * time.Minute

type Service struct {
	docs    repositories.DocumentRepository
	storage Storage
}

func NewService(docs repositories.DocumentRepository, storage Storage) *Service {
	return &Service{docs: docs, storage: storage}
}

// Upload streams a file to object storage and records its metadata.
func (s *Service) Upload(ctx context.Context, applicationID, docType, fileName, contentType string, size int64, body io.Reader) (*models.Document, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, ErrInvalidApplicationID
	}
	if docType == "" {
		docType = "other"
	}
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	key := fmt.Sprintf("applications/%s/%s%s",
		applicationID, uuid.NewString(), path.Ext(fileName))
	if err := s.storage.Put(ctx, key, contentType, body, size); err != nil {
		return nil, err
	}

	doc := &models.Document{
		ApplicationID:      applicationID,
		Type:               docType,
		FileName:           fileName,
		StorageKey:         key,
		ContentType:        contentType,
		SizeBytes:          size,
		VerificationStatus: models.DocumentStatusPending,
	}
	if err := s.docs.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to record document: %w", err)
	}
	return doc, nil
}

// List returns the uploaded documents for an application.
func (s *Service) List(applicationID string) ([]models.Document, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, ErrInvalidApplicationID
	}
	return s.docs.ListByApplication(applicationID)
}

// DownloadURL produces a short-lived presigned link for a document.
func (s *Service) DownloadURL(ctx context.Context, id uint) (string, error) {
	if s.storage == nil {
		return "", ErrStorageUnavailable
	}
	doc, err := s.docs.GetByID(id)
	if err != nil {
		return "", err
	}
	return s.storage.PresignGet(ctx, doc.StorageKey, downloadURLTTL)
}

// SetVerification updates a document's verification status.
func (s *Service) SetVerification(id uint, status string) error {
	switch status {
	case models.DocumentStatusPending, models.DocumentStatusVerified, models.DocumentStatusRejected:
	default:
		return fmt.Errorf("unknown verification status %q", status)
	}
	return s.docs.UpdateVerification(id, status)
}
