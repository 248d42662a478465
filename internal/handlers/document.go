package handlers

import (
	"errors"
	"log"
	"strconv"

	"boreal/internal/models"
	"boreal/internal/services/document"
	"boreal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// 25MB, matches the Fiber body limit configured on the app.
const maxUploadBytes = 25 << 20

type DocumentHandler struct {
	docService *document.Service
}

func NewDocumentHandler(docService *document.Service) *DocumentHandler {
	return &DocumentHandler{docService: docService}
}

// Upload accepts a multipart file for an application. The document type
// comes from the "type" form field and should match an expected-document
// key when the upload is meant to satisfy the checklist.
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	applicationID := c.Params("id")
	docType := c.FormValue("type")
	if docType == "" {
		return response.BadRequest(c, "Document type is required")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return response.Error(c, fiber.StatusRequestEntityTooLarge, "File exceeds the 25MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file for application %s: %v", applicationID, err)
		return response.ServerError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	doc, err := h.docService.Upload(
		c.Context(),
		applicationID,
		docType,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		if errors.Is(err, document.ErrInvalidApplicationID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		if errors.Is(err, document.ErrStorageUnavailable) {
			return response.Error(c, fiber.StatusServiceUnavailable, "Document storage is not available")
		}
		log.Printf("Document upload failed for application %s: %v", applicationID, err)
		return response.ServerError(c, "Failed to store document")
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	docs, err := h.docService.List(c.Params("id"))
	if err != nil {
		if errors.Is(err, document.ErrInvalidApplicationID) {
			return response.BadRequest(c, "Application id must be a valid UUID")
		}
		return response.ServerError(c, "Failed to list documents")
	}
	return response.Success(c, "Documents retrieved", docs)
}

// DownloadURL returns a short-lived presigned link for a stored file.
func (h *DocumentHandler) DownloadURL(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("docId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	url, err := h.docService.DownloadURL(c.Context(), uint(id))
	if err != nil {
		log.Printf("Presign failed for document %d: %v", id, err)
		return response.NotFound(c, "Document not found")
	}

	return response.Success(c, "Download URL generated", fiber.Map{
		"url": url,
	})
}

// Verify sets the verification status on an uploaded document.
func (h *DocumentHandler) Verify(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("docId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid document id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	switch input.Status {
	case models.DocumentStatusPending, models.DocumentStatusVerified, models.DocumentStatusRejected:
	default:
		return response.BadRequest(c, "Status must be pending, verified or rejected")
	}

	if err := h.docService.SetVerification(uint(id), input.Status); err != nil {
		log.Printf("Verification update failed for document %d: %v", id, err)
		return response.ServerError(c, "Failed to update document")
	}

	return response.Success(c, "Document updated", fiber.Map{
		"id":     id,
		"status": input.Status,
	})
}
