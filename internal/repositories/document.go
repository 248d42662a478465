package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type DocumentRepository interface {
	GetByID(id uint) (*models.Document, error)
	ListByApplication(applicationID string) ([]models.Document, error)
	Create(doc *models.Document) error
	UpdateVerification(id uint, status string) error
}

type documentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var doc models.Document
	if err := r.db.First(&doc, id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *documentRepository) ListByApplication(applicationID string) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&docs).Error
	return docs, err
}

func (r *documentRepository) Create(doc *models.Document) error {
	return r.db.Create(doc).Error
}

func (r *documentRepository) UpdateVerification(id uint, status string) error {
	result := r.db.Model(&models.Document{}).
		Where("id = ?", id).
		Update("verification_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
