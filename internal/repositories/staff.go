package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type StaffRepository interface {
	GetByID(id uint) (*models.StaffUser, error)
	GetByEmail(email string) (*models.StaffUser, error)
	Create(user *models.StaffUser) error
	Update(user *models.StaffUser) error
	IncrementTokenVersion(id uint) error
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) GetByID(id uint) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *staffRepository) GetByEmail(email string) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *staffRepository) Create(user *models.StaffUser) error {
	return r.db.Create(user).Error
}

func (r *staffRepository) Update(user *models.StaffUser) error {
	return r.db.Save(user).Error
}

func (r *staffRepository) IncrementTokenVersion(id uint) error {
	return r.db.Model(&models.StaffUser{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
}
