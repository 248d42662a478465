package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type CommunicationRepository interface {
	Create(entry *models.CommunicationLog) error
	Update(entry *models.CommunicationLog) error
	ListByApplication(applicationID string) ([]models.CommunicationLog, error)
}

type communicationRepository struct {
	db *gorm.DB
}

func NewCommunicationRepository(db *gorm.DB) CommunicationRepository {
	return &communicationRepository{db: db}
}

func (r *communicationRepository) Create(entry *models.CommunicationLog) error {
	return r.db.Create(entry).Error
}

func (r *communicationRepository) Update(entry *models.CommunicationLog) error {
	return r.db.Save(entry).Error
}

func (r *communicationRepository) ListByApplication(applicationID string) ([]models.CommunicationLog, error) {
	var entries []models.CommunicationLog
	err := r.db.Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
