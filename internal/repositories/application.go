package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	GetByID(id string) (*models.Application, error)
	GetWithBusiness(id string) (*models.Application, error)
	Update(app *models.Application) error
	List(filter ApplicationFilter) ([]models.Application, int64, error)
	CountDocuments(applicationID string) (int64, error)
	CountExpectedDocuments(applicationID string) (int64, error)
	ExpectedDocuments(applicationID string) ([]models.ExpectedDocument, error)
}

// ApplicationFilter narrows and pages application listings.
type ApplicationFilter struct {
	Status  string
	Stage   string
	Search  string
	Page    int
	PerPage int
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) GetByID(id string) (*models.Application, error) {
	var app models.Application
	if err := r.db.First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) GetWithBusiness(id string) (*models.Application, error) {
	var app models.Application
	if err := r.db.Preload("Business").First(&app, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

func (r *applicationRepository) List(filter ApplicationFilter) ([]models.Application, int64, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := r.db.Model(&models.Application{}).Preload("Business")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Stage != "" {
		query = query.Where("stage = ?", filter.Stage)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("contact_email ILIKE ? OR external_id ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&apps).Error
	return apps, total, err
}

func (r *applicationRepository) CountDocuments(applicationID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Document{}).
		Where("application_id = ?", applicationID).
		Count(&n).Error
	return n, err
}

func (r *applicationRepository) CountExpectedDocuments(applicationID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.ExpectedDocument{}).
		Where("application_id = ?", applicationID).
		Count(&n).Error
	return n, err
}

func (r *applicationRepository) ExpectedDocuments(applicationID string) ([]models.ExpectedDocument, error) {
	var docs []models.ExpectedDocument
	err := r.db.Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&docs).Error
	return docs, err
}
