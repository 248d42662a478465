package handlers

import (
	"errors"
	"log"

	"boreal/internal/repositories"
	"boreal/internal/services/ai"
	"boreal/internal/services/application"
	"boreal/internal/services/intake"
	"boreal/internal/services/matching"
	"boreal/internal/services/payments"
	"boreal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ApplicationHandler struct {
	intakeService *intake.Service
	appService    *application.Service
	matchService  *matching.Service
	payService    *payments.Service
	summarizer    *ai.Summarizer
}

func NewApplicationHandler(
	intakeService *intake.Service,
	appService *application.Service,
	matchService *matching.Service,
	payService *payments.Service,
	summarizer *ai.Summarizer,
) *ApplicationHandler {
	return &ApplicationHandler{
		intakeService: intakeService,
		appService:    appService,
		matchService:  matchService,
		payService:    payService,
		summarizer:    summarizer,
	}
}

// Submit ingests a raw client payload, normalizes it and persists the
// application. Public endpoint, no auth.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	sub, err := intake.Normalize(raw)
	if err != nil {
		var legacyErr *intake.LegacyPayloadError
		if errors.As(err, &legacyErr) {
			log.Printf("Rejected legacy submission, fields: %v", legacyErr.RejectedFields)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":          "Legacy submission format is no longer supported",
				"rejectedFields": legacyErr.RejectedFields,
			})
		}
		var stepsErr *intake.MissingStepsError
		if errors.As(err, &stepsErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":    "Submission is missing required steps",
				"required": stepsErr.Required,
				"received": stepsErr.Received,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if intake.IsTestSubmission(sub) {
		log.Printf("Ignoring test submission for %q (%s)", sub.BusinessName, sub.Email)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"ignored": true,
			"message": "Test submission acknowledged and discarded",
		})
	}

	result, err := h.intakeService.Create(c.Context(), sub)
	if err != nil {
		var fieldErr *intake.FieldError
		if errors.As(err, &fieldErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fieldErr.Message,
				"field": fieldErr.Field,
			})
		}
		log.Printf("Application intake failed for %q: %v", sub.BusinessName, err)
		return response.ServerErrorEnvelope(c, err, "intake_persistence")
	}

	if result.Reused {
		log.Printf("Idempotent retry for application %s", result.ApplicationID)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"applicationId": result.ApplicationID,
		"externalId":    result.ExternalID,
		"status":        result.Status,
		"business": fiber.Map{
			"id":           result.Business.ID,
			"businessName": result.Business.Name,
		},
	})
}

// Finalize transitions a draft application forward (default: submitted)
// and returns the refreshed summary with document readiness.
func (h *ApplicationHandler) Finalize(c *fiber.Ctx) error {
	id := c.Params("id")

	var input struct {
		Status string `json:"status"`
	}
	// Empty body is fine; finalize defaults to submitted.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	result, err := h.appService.Finalize(id, input.Status)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidID):
			return response.BadRequest(c, "Application id must be a valid UUID")
		case errors.Is(err, application.ErrNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, application.ErrInvalidStatus), errors.Is(err, application.ErrNotFinalizable):
			return response.BadRequest(c, err.Error())
		}
		log.Printf("Finalize failed for application %s: %v", id, err)
		return response.ServerError(c, "Failed to finalize application")
	}

	return response.Success(c, "Application finalized", result)
}

// List returns a paged application pipeline view for staff.
func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	filter := repositories.ApplicationFilter{
		Status:  c.Query("status"),
		Stage:   c.Query("stage"),
		Search:  c.Query("search"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 25),
	}

	apps, total, err := h.appService.List(filter)
	if err != nil {
		log.Printf("Application list failed: %v", err)
		return response.ServerError(c, "Failed to list applications")
	}

	return response.Success(c, "Applications retrieved", fiber.Map{
		"applications": apps,
		"total":        total,
		"page":         filter.Page,
		"per_page":     filter.PerPage,
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	app, err := h.appService.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		if errors.Is(err, application.ErrNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.ServerError(c, "Failed to load application")
	}
	return response.Success(c, "Application retrieved", app)
}

// OverrideStatus lets staff move an application to any valid status,
// bypassing the normal forward-only transitions. Audited via logs.
func (h *ApplicationHandler) OverrideStatus(c *fiber.Ctx) error {
	var input struct {
		Status string `json:"status"`
		Stage  string `json:"stage"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	staffEmail := staffEmailFromLocals(c)
	result, err := h.appService.OverrideStatus(c.Params("id"), input.Status, input.Stage, staffEmail)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidID):
			return response.BadRequest(c, "Application id must be a valid UUID")
		case errors.Is(err, application.ErrNotFound):
			return response.NotFound(c, "Application not found")
		case errors.Is(err, application.ErrInvalidStatus):
			return response.BadRequest(c, "Invalid application status")
		}
		log.Printf("Status override failed for application %s: %v", c.Params("id"), err)
		return response.ServerError(c, "Failed to update application status")
	}

	return response.Success(c, "Application status updated", result)
}

// ExpectedDocuments returns the document checklist generated at intake.
func (h *ApplicationHandler) ExpectedDocuments(c *fiber.Ctx) error {
	docs, err := h.appService.ExpectedDocuments(c.Params("id"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		return response.ServerError(c, "Failed to load expected documents")
	}
	return response.Success(c, "Expected documents retrieved", docs)
}

// Matches runs the lender scorer against the application and returns
// ranked candidates.
func (h *ApplicationHandler) Matches(c *fiber.Ctx) error {
	candidates, err := h.matchService.Match(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, matching.ErrInvalidID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		if errors.Is(err, matching.ErrNotFound) {
			return response.NotFound(c, "Application not found")
		}
		log.Printf("Lender matching failed for application %s: %v", c.Params("id"), err)
		return response.ServerError(c, "Failed to match lenders")
	}
	return response.Success(c, "Lender matches computed", fiber.Map{
		"matches": candidates,
		"count":   len(candidates),
	})
}

// Summary drafts an AI review summary of the application for staff.
func (h *ApplicationHandler) Summary(c *fiber.Ctx) error {
	if h.summarizer == nil {
		return response.Error(c, fiber.StatusServiceUnavailable, "Summary generation is not configured")
	}

	app, err := h.appService.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		if errors.Is(err, application.ErrNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.ServerError(c, "Failed to load application")
	}

	summary, err := h.summarizer.Draft(c.Context(), app)
	if err != nil {
		log.Printf("Summary generation failed for application %s: %v", app.ID, err)
		return response.ServerError(c, "Failed to generate summary")
	}

	return response.Success(c, "Summary generated", fiber.Map{
		"summary": summary,
	})
}

// PaymentLink creates a Stripe intent for the origination fee and
// returns the client secret.
func (h *ApplicationHandler) PaymentLink(c *fiber.Ctx) error {
	app, err := h.appService.Get(c.Params("id"))
	if err != nil {
		if errors.Is(err, application.ErrInvalidID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		if errors.Is(err, application.ErrNotFound) {
			return response.NotFound(c, "Application not found")
		}
		return response.ServerError(c, "Failed to load application")
	}

	clientSecret, err := h.payService.CreateFeeIntent(app)
	if err != nil {
		log.Printf("Fee intent creation failed for application %s: %v", app.ID, err)
		return response.ServerError(c, "Failed to create payment intent")
	}

	return response.Success(c, "Payment intent created", fiber.Map{
		"client_secret": clientSecret,
		"amount_cents":  payments.FeeCents(app.RequestedAmount),
	})
}
