package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type BusinessRepository interface {
	GetByID(id uint) (*models.Business, error)
	GetByNormalizedName(name string) (*models.Business, error)
	List(page, perPage int) ([]models.Business, int64, error)
	Update(business *models.Business) error
}

type businessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

func (r *businessRepository) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	if err := r.db.First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) GetByNormalizedName(name string) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("normalized_name = ?", name).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

func (r *businessRepository) List(page, perPage int) ([]models.Business, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	var total int64
	if err := r.db.Model(&models.Business{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var businesses []models.Business
	err := r.db.Order("name ASC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&businesses).Error
	return businesses, total, err
}

func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}
