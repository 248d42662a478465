package repositories

import (
	"boreal/internal/models"

	"gorm.io/gorm"
)

type LenderRepository interface {
	GetByID(id uint) (*models.Lender, error)
	List(includeInactive bool) ([]models.Lender, error)
	Create(lender *models.Lender) error
	Update(lender *models.Lender) error

	GetProductByID(id uint) (*models.LenderProduct, error)
	ActiveProducts() ([]models.LenderProduct, error)
	ProductsByCategory(category string) ([]models.LenderProduct, error)
	CreateProduct(product *models.LenderProduct) error
	UpdateProduct(product *models.LenderProduct) error
}

type lenderRepository struct {
	db *gorm.DB
}

func NewLenderRepository(db *gorm.DB) LenderRepository {
	return &lenderRepository{db: db}
}

func (r *lenderRepository) GetByID(id uint) (*models.Lender, error) {
	var lender models.Lender
	if err := r.db.Preload("Products").First(&lender, id).Error; err != nil {
		return nil, err
	}
	return &lender, nil
}

func (r *lenderRepository) List(includeInactive bool) ([]models.Lender, error) {
	query := r.db.Preload("Products")
	if !includeInactive {
		query = query.Where("active = ?", true)
	}
	var lenders []models.Lender
	err := query.Order("name ASC").Find(&lenders).Error
	return lenders, err
}

func (r *lenderRepository) Create(lender *models.Lender) error {
	return r.db.Create(lender).Error
}

func (r *lenderRepository) Update(lender *models.Lender) error {
	return r.db.Save(lender).Error
}

func (r *lenderRepository) GetProductByID(id uint) (*models.LenderProduct, error) {
	var product models.LenderProduct
	if err := r.db.Preload("Lender").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *lenderRepository) ActiveProducts() ([]models.LenderProduct, error) {
	var products []models.LenderProduct
	err := r.db.Preload("Lender").
		Where("lender_products.active = ?", true).
		Find(&products).Error
	return products, err
}

func (r *lenderRepository) ProductsByCategory(category string) ([]models.LenderProduct, error) {
	var products []models.LenderProduct
	err := r.db.Where("active = ? AND category = ?", true, category).
		Find(&products).Error
	return products, err
}

func (r *lenderRepository) CreateProduct(product *models.LenderProduct) error {
	return r.db.Create(product).Error
}

func (r *lenderRepository) UpdateProduct(product *models.LenderProduct) error {
	return r.db.Save(product).Error
}
