package handlers

import (
	"errors"
	"log"
	"strconv"

	"boreal/internal/models"
	"boreal/internal/services/lender"
	"boreal/internal/utils/response"
	"boreal/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type LenderHandler struct {
	lenderService *lender.Service
}

func NewLenderHandler(lenderService *lender.Service) *LenderHandler {
	return &LenderHandler{lenderService: lenderService}
}

type lenderInput struct {
	Name         string `json:"name" validate:"required,min=2"`
	Website      string `json:"website" validate:"omitempty,url"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	Active       *bool  `json:"active"`
}

type productInput struct {
	LenderID            uint                    `json:"lender_id" validate:"required"`
	Name                string                  `json:"name" validate:"required,min=2"`
	Category            string                  `json:"category" validate:"required"`
	Country             string                  `json:"country" validate:"omitempty,len=2"`
	MinAmount           float64                 `json:"min_amount" validate:"gte=0"`
	MaxAmount           float64                 `json:"max_amount" validate:"gtefield=MinAmount"`
	MinMonthsInBusiness int                     `json:"min_months_in_business" validate:"gte=0"`
	MinMonthlyRevenue   float64                 `json:"min_monthly_revenue" validate:"gte=0"`
	PreferredIndustries []string                `json:"preferred_industries"`
	DocRequirements     []models.DocRequirement `json:"doc_requirements"`
	RateLow             float64                 `json:"rate_low" validate:"gte=0"`
	RateHigh            float64                 `json:"rate_high" validate:"gtefield=RateLow"`
	Active              *bool                   `json:"active"`
}

func (h *LenderHandler) ListLenders(c *fiber.Ctx) error {
	includeInactive := c.Query("include_inactive") == "true"
	lenders, err := h.lenderService.ListLenders(includeInactive)
	if err != nil {
		log.Printf("Lender list failed: %v", err)
		return response.ServerError(c, "Failed to list lenders")
	}
	return response.Success(c, "Lenders retrieved", lenders)
}

func (h *LenderHandler) GetLender(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lender id")
	}

	l, err := h.lenderService.GetLender(uint(id))
	if err != nil {
		return response.NotFound(c, "Lender not found")
	}
	return response.Success(c, "Lender retrieved", l)
}

func (h *LenderHandler) CreateLender(c *fiber.Ctx) error {
	var input lenderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	l := &models.Lender{
		Name:         input.Name,
		Website:      input.Website,
		ContactEmail: input.ContactEmail,
		Active:       true,
	}
	if input.Active != nil {
		l.Active = *input.Active
	}

	if err := h.lenderService.CreateLender(c.Context(), l); err != nil {
		log.Printf("Lender create failed: %v", err)
		return response.ServerError(c, "Failed to create lender")
	}
	return c.Status(fiber.StatusCreated).JSON(l)
}

func (h *LenderHandler) UpdateLender(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid lender id")
	}

	l, err := h.lenderService.GetLender(uint(id))
	if err != nil {
		return response.NotFound(c, "Lender not found")
	}

	var input lenderInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	l.Name = input.Name
	l.Website = input.Website
	l.ContactEmail = input.ContactEmail
	if input.Active != nil {
		l.Active = *input.Active
	}

	if err := h.lenderService.UpdateLender(c.Context(), l); err != nil {
		log.Printf("Lender update failed: %v", err)
		return response.ServerError(c, "Failed to update lender")
	}
	return response.Success(c, "Lender updated", l)
}

func (h *LenderHandler) GetProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product id")
	}

	p, err := h.lenderService.GetProduct(uint(id))
	if err != nil {
		return response.NotFound(c, "Lender product not found")
	}
	return response.Success(c, "Lender product retrieved", p)
}

func (h *LenderHandler) CreateProduct(c *fiber.Ctx) error {
	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	p := productFromInput(&input)
	if err := h.lenderService.CreateProduct(c.Context(), p); err != nil {
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationError(c, vErr.Error())
		}
		log.Printf("Product create failed: %v", err)
		return response.ServerError(c, "Failed to create lender product")
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *LenderHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid product id")
	}

	existing, err := h.lenderService.GetProduct(uint(id))
	if err != nil {
		return response.NotFound(c, "Lender product not found")
	}

	var input productInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	p := productFromInput(&input)
	p.ID = existing.ID

	if err := h.lenderService.UpdateProduct(c.Context(), p); err != nil {
		var vErr *validation.ValidationError
		if errors.As(err, &vErr) {
			return response.ValidationError(c, vErr.Error())
		}
		log.Printf("Product update failed: %v", err)
		return response.ServerError(c, "Failed to update lender product")
	}
	return response.Success(c, "Lender product updated", p)
}

func productFromInput(input *productInput) *models.LenderProduct {
	p := &models.LenderProduct{
		LenderID:            input.LenderID,
		Name:                input.Name,
		Category:            input.Category,
		Country:             input.Country,
		MinAmount:           input.MinAmount,
		MaxAmount:           input.MaxAmount,
		MinMonthsInBusiness: input.MinMonthsInBusiness,
		MinMonthlyRevenue:   input.MinMonthlyRevenue,
		PreferredIndustries: models.StringList(input.PreferredIndustries),
		DocRequirements:     models.DocRequirementList(input.DocRequirements),
		RateLow:             input.RateLow,
		RateHigh:            input.RateHigh,
		Active:              true,
	}
	if input.Active != nil {
		p.Active = *input.Active
	}
	return p
}
