// Package payments wraps the card vendor for origination-fee collection.
package payments

import (
	"errors"
	"fmt"

	"boreal/internal/models"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

// Origination fee: 1% of requested amount, floor $250.
const (
	feeRate     = 0.01
	minFeeCents = 25000
)

type Service struct {
	configured bool
}

func NewService(apiKey string) *Service {
	if apiKey == "" {
		return &Service{}
	}
	stripe.Key = apiKey
	return &Service{configured: true}
}

// FeeCents computes the origination fee for a requested amount.
func FeeCents(requestedAmount float64) int64 {
	fee := int64(requestedAmount * feeRate * 100)
	if fee < minFeeCents {
		return minFeeCents
	}
	return fee
}

// CreateFeeIntent creates a payment intent for an application's
// origination fee and returns the client secret the frontend needs.
func (s *Service) CreateFeeIntent(app *models.Application) (string, error) {
	if !s.configured {
		return "", errors.New("payments vendor not configured")
	}

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(FeeCents(app.RequestedAmount)),
		Currency:     stripe.String(string(stripe.CurrencyUSD)),
		ReceiptEmail: stripe.String(app.ContactEmail),
	}
	params.AddMetadata("application_id", app.ID)
	params.AddMetadata("external_id", app.ExternalID)

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create fee intent: %w", err)
	}
	return intent.ClientSecret, nil
}
