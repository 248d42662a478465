// Package routes wires repositories, services and handlers together and
// mounts the HTTP surface.
package routes

import (
	"context"
	"log"
	"time"

	"boreal/internal/config"
	"boreal/internal/handlers"
	"boreal/internal/middleware"
	"boreal/internal/models"
	"boreal/internal/repositories"
	"boreal/internal/services/ai"
	"boreal/internal/services/application"
	"boreal/internal/services/auth"
	"boreal/internal/services/contact"
	"boreal/internal/services/docreq"
	"boreal/internal/services/document"
	"boreal/internal/services/intake"
	"boreal/internal/services/lender"
	"boreal/internal/services/matching"
	"boreal/internal/services/messaging"
	"boreal/internal/services/payments"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func SetupRoutes(app *fiber.App) {
	// Repositories
	appRepo := repositories.NewApplicationRepository(repositories.DB)
	lenderRepo := repositories.NewLenderRepository(repositories.DB)
	docRepo := repositories.NewDocumentRepository(repositories.DB)
	contactRepo := repositories.NewContactRepository(repositories.DB)
	commRepo := repositories.NewCommunicationRepository(repositories.DB)
	staffRepo := repositories.NewStaffRepository(repositories.DB)

	// Services
	authService := auth.NewService(staffRepo)
	resolver := docreq.NewResolver(lenderRepo)
	intakeService := intake.NewService(repositories.DB, resolver)
	appService := application.NewService(appRepo, repositories.DB)
	lenderService := lender.NewService(lenderRepo, repositories.CacheService)
	matchService := matching.NewService(appRepo, lenderService)
	payService := payments.NewService(config.GetEnv("STRIPE_SECRET_KEY", ""))
	contactService := contact.NewService(contactRepo)
	messagingService := messaging.NewService(commRepo, messaging.NewTwilioClient(), messaging.NewGraphClient())

	var storage document.Storage
	if s3Storage, err := document.NewS3Storage(context.Background()); err != nil {
		log.Printf("Object storage unavailable, document uploads disabled: %v", err)
	} else {
		storage = s3Storage
	}
	docService := document.NewService(docRepo, storage)

	var summarizer *ai.Summarizer
	if config.GetEnv("GEMINI_API_KEY", "") != "" {
		s, err := ai.NewSummarizer(context.Background())
		if err != nil {
			log.Printf("Summarizer unavailable: %v", err)
		} else {
			summarizer = s
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	appHandler := handlers.NewApplicationHandler(intakeService, appService, matchService, payService, summarizer)
	lenderHandler := handlers.NewLenderHandler(lenderService)
	docHandler := handlers.NewDocumentHandler(docService)
	contactHandler := handlers.NewContactHandler(contactService)
	commHandler := handlers.NewCommunicationHandler(messagingService)

	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Brute-force protection on the endpoints an anonymous caller can hit.
	publicLimiter := limiter.New(limiter.Config{
		Max:        30,
		Expiration: time.Minute,
	})

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Get("/health", handlers.HealthCheck)
	api.Post("/staff/login", publicLimiter, authHandler.Login)
	api.Post("/staff/refresh", authHandler.Refresh)

	// Public intake: the applicant-facing submission endpoint.
	applications := api.Group("/applications")
	applications.Post("/", publicLimiter, appHandler.Submit)
	applications.Post("/:id/documents", publicLimiter, docHandler.Upload)
	applications.Patch("/:id", appHandler.Finalize)

	// Staff portal routes.
	staff := api.Group("/", authMiddleware.Handler)
	staff.Post("/staff/logout", authHandler.Logout)
	staff.Post("/staff/change-password", authHandler.ChangePassword)
	staff.Get("/staff/me", authHandler.Me)

	staffApps := staff.Group("/applications")
	staffApps.Get("/", middleware.HasPermission(models.PermissionApplicationRead), appHandler.List)
	staffApps.Get("/:id", middleware.HasPermission(models.PermissionApplicationRead), appHandler.Get)
	staffApps.Put("/:id/status", middleware.HasPermission(models.PermissionApplicationWrite), appHandler.OverrideStatus)
	staffApps.Get("/:id/expected-documents", middleware.HasPermission(models.PermissionApplicationRead), appHandler.ExpectedDocuments)
	staffApps.Get("/:id/matches", middleware.HasPermission(models.PermissionApplicationRead), appHandler.Matches)
	staffApps.Get("/:id/summary", middleware.HasPermission(models.PermissionApplicationRead), appHandler.Summary)
	staffApps.Post("/:id/payment-link", middleware.HasPermission(models.PermissionApplicationWrite), appHandler.PaymentLink)

	staffApps.Get("/:id/documents", middleware.HasPermission(models.PermissionApplicationRead), docHandler.List)
	staffApps.Get("/:id/documents/:docId/download", middleware.HasPermission(models.PermissionApplicationRead), docHandler.DownloadURL)
	staffApps.Put("/:id/documents/:docId/verification", middleware.HasPermission(models.PermissionApplicationWrite), docHandler.Verify)

	staffApps.Post("/:id/sms", middleware.HasPermission(models.PermissionCommsWrite), commHandler.SendSMS)
	staffApps.Post("/:id/email", middleware.HasPermission(models.PermissionCommsWrite), commHandler.SendEmail)
	staffApps.Get("/:id/communications", middleware.HasPermission(models.PermissionApplicationRead), commHandler.History)

	lenders := staff.Group("/lenders")
	lenders.Get("/", middleware.HasPermission(models.PermissionLenderRead), lenderHandler.ListLenders)
	lenders.Get("/:id", middleware.HasPermission(models.PermissionLenderRead), lenderHandler.GetLender)
	lenders.Post("/", middleware.HasPermission(models.PermissionLenderWrite), lenderHandler.CreateLender)
	lenders.Put("/:id", middleware.HasPermission(models.PermissionLenderWrite), lenderHandler.UpdateLender)

	products := staff.Group("/lender-products")
	products.Get("/:id", middleware.HasPermission(models.PermissionLenderRead), lenderHandler.GetProduct)
	products.Post("/", middleware.HasPermission(models.PermissionLenderWrite), lenderHandler.CreateProduct)
	products.Put("/:id", middleware.HasPermission(models.PermissionLenderWrite), lenderHandler.UpdateProduct)

	contacts := staff.Group("/contacts")
	contacts.Get("/", middleware.HasPermission(models.PermissionContactRead), contactHandler.List)
	contacts.Get("/:id", middleware.HasPermission(models.PermissionContactRead), contactHandler.Get)
	contacts.Post("/", middleware.HasPermission(models.PermissionContactRead), contactHandler.Merge)

	// Admin-only staff management.
	admin := api.Group("/admin", authMiddleware.Handler, middleware.AdminOnly)
	admin.Post("/staff", authHandler.CreateStaff)
}
