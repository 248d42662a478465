package handlers

import (
	"log"
	"strconv"

	"boreal/internal/models"
	"boreal/internal/services/contact"
	"boreal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type ContactHandler struct {
	contactService *contact.Service
}

func NewContactHandler(contactService *contact.Service) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 25)

	contacts, total, err := h.contactService.List(c.Query("search"), page, perPage)
	if err != nil {
		log.Printf("Contact list failed: %v", err)
		return response.ServerError(c, "Failed to list contacts")
	}

	return response.Success(c, "Contacts retrieved", fiber.Map{
		"contacts": contacts,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (h *ContactHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid contact id")
	}

	ct, err := h.contactService.Get(uint(id))
	if err != nil {
		return response.NotFound(c, "Contact not found")
	}
	return response.Success(c, "Contact retrieved", ct)
}

// Merge upserts a contact by email, updating name and phone in place.
func (h *ContactHandler) Merge(c *fiber.Ctx) error {
	var input struct {
		Email     string `json:"email" validate:"required,email"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Phone     string `json:"phone"`
		Source    string `json:"source"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	ct := &models.Contact{
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Source:    input.Source,
	}
	if err := h.contactService.Merge(ct); err != nil {
		log.Printf("Contact merge failed for %s: %v", input.Email, err)
		return response.ServerError(c, "Failed to save contact")
	}

	return response.Success(c, "Contact saved", ct)
}
