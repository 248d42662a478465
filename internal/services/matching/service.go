// Package matching ranks lender products against a persisted
// application. Matching is read-only; sending to a lender is a separate,
// explicit staff action.
package matching

import (
	"context"
	"errors"
	"sort"

	"boreal/internal/models"
	"boreal/internal/repositories"
	"boreal/internal/services/lender"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidID = errors.New("application id must be a valid UUID")
	ErrNotFound  = errors.New("application not found")
)

type Service struct {
	apps    repositories.ApplicationRepository
	catalog *lender.Service
}

func NewService(apps repositories.ApplicationRepository, catalog *lender.Service) *Service {
	return &Service{apps: apps, catalog: catalog}
}

// Match returns candidate products ordered by score. Ties break by
// lender name ascending, then product name ascending, so repeated calls
// return the same order.
func (s *Service) Match(ctx context.Context, applicationID string) ([]Candidate, error) {
	if _, err := uuid.Parse(applicationID); err != nil {
		return nil, ErrInvalidID
	}

	app, err := s.apps.GetWithBusiness(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	products, err := s.catalog.ActiveProducts(ctx)
	if err != nil {
		return nil, err
	}

	candidates := Rank(app, products)
	return candidates, nil
}

// Rank applies the hard filters and soft scoring to a product catalog.
// Exported separately from Match so it can run against any product set.
func Rank(app *models.Application, products []models.LenderProduct) []Candidate {
	candidates := make([]Candidate, 0, len(products))
	for _, p := range products {
		ok, hardRules := hardFilter(app, p)
		if !ok {
			continue
		}
		score, softRules := softScore(app, p)
		candidates = append(candidates, newCandidate(p, score, append(hardRules, softRules...)))
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		if candidates[i].LenderName != candidates[j].LenderName {
			return candidates[i].LenderName < candidates[j].LenderName
		}
		return candidates[i].Product < candidates[j].Product
	})
	return candidates
}
