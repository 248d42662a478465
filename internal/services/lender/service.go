// Package lender manages the lender/product catalog. The active-product
// list is read on every match run, so it is cached in redis and
// invalidated on any catalog write.
package lender

import (
	"context"
	"log"
	"time"

	"boreal/internal/models"
	"boreal/internal/repositories"
	"boreal/internal/repositories/cache"
	"boreal/internal/validation"
)

const catalogTTL = 5 * time.Minute

type Service struct {
	repo  repositories.LenderRepository
	cache *cache.CacheService
}

func NewService(repo repositories.LenderRepository, cacheService *cache.CacheService) *Service {
	return &Service{repo: repo, cache: cacheService}
}

func (s *Service) GetLender(id uint) (*models.Lender, error) {
	return s.repo.GetByID(id)
}

func (s *Service) ListLenders(includeInactive bool) ([]models.Lender, error) {
	return s.repo.List(includeInactive)
}

func (s *Service) CreateLender(ctx context.Context, lender *models.Lender) error {
	if err := s.repo.Create(lender); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *Service) UpdateLender(ctx context.Context, lender *models.Lender) error {
	if err := s.repo.Update(lender); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *Service) GetProduct(id uint) (*models.LenderProduct, error) {
	return s.repo.GetProductByID(id)
}

func (s *Service) CreateProduct(ctx context.Context, product *models.LenderProduct) error {
	v := validation.New()
	v.LenderProduct(product)
	if !v.Valid() {
		for field, message := range v.Errors {
			return &validation.ValidationError{Field: field, Message: message}
		}
	}
	if err := s.repo.CreateProduct(product); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, product *models.LenderProduct) error {
	v := validation.New()
	v.LenderProduct(product)
	if !v.Valid() {
		for field, message := range v.Errors {
			return &validation.ValidationError{Field: field, Message: message}
		}
	}
	if err := s.repo.UpdateProduct(product); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

// ActiveProducts returns the catalog used by the matching scorer,
// serving from cache when warm.
func (s *Service) ActiveProducts(ctx context.Context) ([]models.LenderProduct, error) {
	if s.cache != nil {
		var cached []models.LenderProduct
		found, err := s.cache.Get(ctx, cache.KeyLenderCatalog, &cached)
		if err != nil {
			log.Printf("lender catalog cache read failed: %v", err)
		}
		if found {
			return cached, nil
		}
	}

	products, err := s.repo.ActiveProducts()
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetWithTTL(ctx, cache.KeyLenderCatalog, products, catalogTTL); err != nil {
			log.Printf("lender catalog cache write failed: %v", err)
		}
	}
	return products, nil
}

func (s *Service) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyLenderCatalog); err != nil {
		log.Printf("lender catalog cache invalidation failed: %v", err)
	}
}
