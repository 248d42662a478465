// Package contact exposes the CRM contact book to staff. Contact rows
// are created and merged by the notifier worker; this service only
// reads and performs explicit staff edits.
package contact

import (
	"boreal/internal/models"
	"boreal/internal/repositories"
)

type Service struct {
	repo repositories.ContactRepository
}

func NewService(repo repositories.ContactRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(id uint) (*models.Contact, error) {
	return s.repo.GetByID(id)
}

func (s *Service) GetByEmail(email string) (*models.Contact, error) {
	return s.repo.GetByEmail(email)
}

func (s *Service) List(search string, page, perPage int) ([]models.Contact, int64, error) {
	return s.repo.List(search, page, perPage)
}

// Merge upserts a contact by email, the same semantics the worker uses.
func (s *Service) Merge(contact *models.Contact) error {
	return s.repo.Upsert(contact)
}
