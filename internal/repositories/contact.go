package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ContactRepository interface {
	GetByID(id uint) (*models.Contact, error)
	GetByEmail(email string) (*models.Contact, error)
	List(search string, page, perPage int) ([]models.Contact, int64, error)
	Upsert(contact *models.Contact) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.First(&contact, id).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) GetByEmail(email string) (*models.Contact, error) {
	var contact models.Contact
	if err := r.db.Where("email = ?", email).First(&contact).Error; err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) List(search string, page, perPage int) ([]models.Contact, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 || perPage > 100 {
		perPage = 25
	}

	query := r.db.Model(&models.Contact{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("email ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contacts []models.Contact
	err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&contacts).Error
	return contacts, total, err
}

// Upsert merges a contact on email conflict, keeping the row and
// refreshing the mutable fields.
func (r *contactRepository) Upsert(contact *models.Contact) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "phone", "application_id", "updated_at",
		}),
	}).Create(contact).Error
}
