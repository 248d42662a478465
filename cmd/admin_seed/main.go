// Package main seeds the first admin staff user and a starter lender
// catalog so a fresh deployment is usable immediately.
package main

import (
	"log"
	"os"

	"boreal/internal/config"
	"boreal/internal/models"
	"boreal/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")

	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		sqlDB, err := repositories.DB.DB()
		if err != nil {
			log.Printf("⚠️ Failed to get SQL DB instance: %v", err)
			return
		}
		if err := sqlDB.Close(); err != nil {
			log.Printf("⚠️ Failed to close PostgreSQL connection: %v", err)
		}
	}()

	seedAdmin(adminEmail, adminPassword)
	seedLenderCatalog()
}

func seedAdmin(email, password string) {
	var existing models.StaffUser
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.StaffUser{
		Email:        email,
		Password:     string(hashedPassword),
		FirstName:    "Admin",
		Role:         models.RoleAdmin,
		TokenVersion: 1,
	}

	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	log.Println("✅ Admin account created successfully!")
}

// seedLenderCatalog inserts a small default catalog when the lenders
// table is empty. Idempotent: reruns do nothing once lenders exist.
func seedLenderCatalog() {
	var count int64
	if err := repositories.DB.Model(&models.Lender{}).Count(&count).Error; err != nil {
		log.Fatal("Failed to count lenders:", err)
	}
	if count > 0 {
		log.Println("Lender catalog already seeded")
		return
	}

	lenders := []models.Lender{
		{
			Name:         "Northway Capital",
			Website:      "https://northwaycapital.example.com",
			ContactEmail: "partners@northwaycapital.example.com",
			Active:       true,
			Products: []models.LenderProduct{
				{
					Name:                "Working Capital Term Loan",
					Category:            "working_capital",
					Country:             "CA",
					MinAmount:           10000,
					MaxAmount:           250000,
					MinMonthsInBusiness: 12,
					MinMonthlyRevenue:   15000,
					PreferredIndustries: models.StringList{"retail", "hospitality", "services"},
					DocRequirements: models.DocRequirementList{
						{Key: "bank_statements", Label: "Bank statements", Required: true, Months: 6},
						{Key: "government_id", Label: "Government-issued ID", Required: true},
						{Key: "void_cheque", Label: "Void cheque", Required: true},
					},
					RateLow:  9.5,
					RateHigh: 18.0,
					Active:   true,
				},
				{
					Name:                "Equipment Financing",
					Category:            "equipment",
					Country:             "CA",
					MinAmount:           25000,
					MaxAmount:           500000,
					MinMonthsInBusiness: 24,
					MinMonthlyRevenue:   30000,
					DocRequirements: models.DocRequirementList{
						{Key: "bank_statements", Label: "Bank statements", Required: true, Months: 6},
						{Key: "equipment_quote", Label: "Equipment quote or invoice", Required: true},
						{Key: "government_id", Label: "Government-issued ID", Required: true},
					},
					RateLow:  7.0,
					RateHigh: 14.5,
					Active:   true,
				},
			},
		},
		{
			Name:         "Meridian Business Finance",
			Website:      "https://meridianbf.example.com",
			ContactEmail: "intake@meridianbf.example.com",
			Active:       true,
			Products: []models.LenderProduct{
				{
					Name:                "Merchant Cash Advance",
					Category:            "merchant_cash_advance",
					MinAmount:           5000,
					MaxAmount:           150000,
					MinMonthsInBusiness: 6,
					MinMonthlyRevenue:   10000,
					PreferredIndustries: models.StringList{"restaurants", "retail", "ecommerce"},
					DocRequirements: models.DocRequirementList{
						{Key: "bank_statements", Label: "Bank statements", Required: true, Months: 6},
						{Key: "void_cheque", Label: "Void cheque", Required: true},
					},
					RateLow:  1.15,
					RateHigh: 1.45,
					Active:   true,
				},
			},
		},
	}

	for i := range lenders {
		if err := repositories.DB.Create(&lenders[i]).Error; err != nil {
			log.Fatal("Failed to seed lender catalog:", err)
		}
	}

	log.Printf("✅ Seeded %d lenders with starter products", len(lenders))
}
