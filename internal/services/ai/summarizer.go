// Package ai drafts review notes for staff from application data.
package ai

import (
	"context"
	"fmt"

	"boreal/internal/config"
	"boreal/internal/models"

	"google.golang.org/genai"
)

type Summarizer struct {
	client *genai.Client
	model  string
}

func NewSummarizer(ctx context.Context) (*Summarizer, error) {
	apiKey := config.GetEnv("GEMINI_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY must be set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	return &Summarizer{
		client: client,
		model:  config.GetEnv("GEMINI_MODEL", "gemini-2.0-flash"),
	}, nil
}

// Draft produces a short underwriting summary for staff review. The
// output is a draft, never shown to applicants and never persisted
// without a staff member saving it.
func (s *Summarizer) Draft(ctx context.Context, app *models.Application) (string, error) {
	businessName := ""
	industry := ""
	if app.Business != nil {
		businessName = app.Business.Name
		industry = app.Business.Industry
	}

	prompt := fmt.Sprintf(
		"Write a short, factual loan-application summary for an internal reviewer.\n"+
			"Business: %s (industry: %s)\n"+
			"Requested amount: $%.2f\n"+
			"Use of funds: %s\n"+
			"Months in business: %d\n"+
			"Monthly revenue: $%.2f\n"+
			"Keep it under 120 words, no salutation.",
		businessName, industry, app.RequestedAmount, app.UseOfFunds,
		app.MonthsInBusiness, app.MonthlyRevenue)

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("summary generation failed: %w", err)
	}
	return resp.Text(), nil
}
