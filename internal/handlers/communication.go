package handlers

import (
	"log"

	"boreal/internal/services/messaging"
	"boreal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type CommunicationHandler struct {
	messagingService *messaging.Service
}

func NewCommunicationHandler(messagingService *messaging.Service) *CommunicationHandler {
	return &CommunicationHandler{messagingService: messagingService}
}

// SendSMS sends a staff-initiated text tied to an application.
func (h *CommunicationHandler) SendSMS(c *fiber.Ctx) error {
	var input struct {
		To   string `json:"to" validate:"required,e164"`
		Body string `json:"body" validate:"required,max=1600"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	entry, err := h.messagingService.SendSMS(c.Context(), c.Params("id"), input.To, input.Body)
	if err != nil {
		log.Printf("SMS send failed for application %s: %v", c.Params("id"), err)
		// The attempt is logged regardless; surface the failure with the
		// log entry so staff can see provider errors.
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":         "SMS provider rejected the message",
			"communication": entry,
		})
	}

	return response.Success(c, "SMS sent", entry)
}

func (h *CommunicationHandler) SendEmail(c *fiber.Ctx) error {
	var input struct {
		To      string `json:"to" validate:"required,email"`
		Subject string `json:"subject" validate:"required,max=255"`
		Body    string `json:"body" validate:"required"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := validate.Struct(input); err != nil {
		return response.ValidationError(c, err.Error())
	}

	entry, err := h.messagingService.SendEmail(c.Context(), c.Params("id"), input.To, input.Subject, input.Body)
	if err != nil {
		log.Printf("Email send failed for application %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":         "Email provider rejected the message",
			"communication": entry,
		})
	}

	return response.Success(c, "Email sent", entry)
}

// History returns every logged message for an application, newest first.
func (h *CommunicationHandler) History(c *fiber.Ctx) error {
	entries, err := h.messagingService.History(c.Params("id"))
	if err != nil {
		return response.ServerError(c, "Failed to load communication history")
	}
	return response.Success(c, "Communication history retrieved", entries)
}
