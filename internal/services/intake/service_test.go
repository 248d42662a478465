package intake

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"boreal/internal/models"
	"boreal/internal/services/docreq"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func validSubmission() *Submission {
	return &Submission{
		RequestedAmount: 50000,
		BusinessName:    "Acme Co",
		Email:           "ada@acme.ca",
		FirstName:       "Ada",
		LastName:        "Lovelace",
	}
}

func TestValidateRequiredGroups(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Submission)
		wantField string
	}{
		{"valid submission", func(s *Submission) {}, ""},
		{"missing amount", func(s *Submission) { s.RequestedAmount = 0 }, "requestedAmount"},
		{"negative amount", func(s *Submission) { s.RequestedAmount = -1 }, "requestedAmount"},
		{"missing business name", func(s *Submission) { s.BusinessName = "" }, "businessName"},
		{"whitespace business name", func(s *Submission) { s.BusinessName = "   " }, "businessName"},
		{"single char business name", func(s *Submission) { s.BusinessName = "A" }, "businessName"},
		{"missing email", func(s *Submission) { s.Email = "" }, "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := validSubmission()
			tt.mutate(sub)

			err := validateRequiredGroups(sub)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.wantField, fieldErr.Field)
		})
	}
}

func TestBuildApplication(t *testing.T) {
	sub := validSubmission()
	sub.UseOfFunds = "inventory"
	sub.ProductCategory = "working_capital"
	sub.Raw = models.JSON{"step1": map[string]interface{}{"requestedAmount": 50000.0}}

	id := "b3a3f1c2-9f7e-4d2a-8e6b-1a2b3c4d5e6f"
	app := buildApplication(id, 7, sub)

	assert.Equal(t, id, app.ID)
	assert.Equal(t, uint(7), app.BusinessID)
	assert.Equal(t, models.ApplicationStatusDraft, app.Status)
	assert.Equal(t, models.StageNew, app.Stage)
	assert.Equal(t, "ada@acme.ca", app.ContactEmail)
	assert.NotNil(t, app.FormData)

	// APP-<unix>-<first 8 of uuid, uppercased>
	require.True(t, strings.HasPrefix(app.ExternalID, "APP-"))
	assert.True(t, strings.HasSuffix(app.ExternalID, "B3A3F1C2"))
}

func TestIsUniqueViolation(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "idx_businesses_normalized_name"}
	assert.True(t, isUniqueViolation(dup))
	assert.True(t, isUniqueViolation(errors.Join(errors.New("insert failed"), dup)))

	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert failed: %w", gorm.ErrDuplicatedKey)))

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("connection reset")))
	assert.False(t, isUniqueViolation(nil))
}

// newIntakeDB builds an in-memory database with the intake tables. A
// single connection keeps the :memory: database alive across queries,
// and TranslateError surfaces unique violations as gorm.ErrDuplicatedKey
// the way the dedup paths expect.
func newIntakeDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.Application{},
		&models.ExpectedDocument{},
		&models.OutboxMessage{},
	))
	return db
}

func persistedSubmission(business, email string) *Submission {
	return &Submission{
		RequestedAmount: 50000,
		UseOfFunds:      "inventory",
		Country:         "CA",
		ProductCategory: "working_capital",
		BusinessName:    business,
		Email:           email,
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Phone:           "+14165550100",
		Raw:             models.JSON{"step1": map[string]interface{}{"requestedAmount": 50000.0}},
	}
}

func TestCreate_SharedContactEmail(t *testing.T) {
	db := newIntakeDB(t)
	svc := NewService(db, docreq.NewResolver(nil))
	ctx := context.Background()

	first, err := svc.Create(ctx, persistedSubmission("Acme Co", "shared@acme.ca"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, persistedSubmission("Borealis Ltd", "shared@acme.ca"))
	require.NoError(t, err)

	assert.NotEqual(t, first.ApplicationID, second.ApplicationID)
	assert.NotEqual(t, first.Business.ID, second.Business.ID)

	var n int64
	require.NoError(t, db.Model(&models.Application{}).
		Where("contact_email = ?", "shared@acme.ca").Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestCreate_ReusesBusinessByNormalizedName(t *testing.T) {
	db := newIntakeDB(t)
	svc := NewService(db, docreq.NewResolver(nil))
	ctx := context.Background()

	first, err := svc.Create(ctx, persistedSubmission("Acme Co", "ada@acme.ca"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, persistedSubmission("  ACME   co ", "grace@acme.ca"))
	require.NoError(t, err)

	assert.Equal(t, first.Business.ID, second.Business.ID)
	assert.NotEqual(t, first.ApplicationID, second.ApplicationID)

	var businesses int64
	require.NoError(t, db.Model(&models.Business{}).Count(&businesses).Error)
	assert.EqualValues(t, 1, businesses)
}

func TestCreate_ClientIDReplayReturnsExistingRow(t *testing.T) {
	db := newIntakeDB(t)
	svc := NewService(db, docreq.NewResolver(nil))
	ctx := context.Background()
	clientID := uuid.NewString()

	sub := persistedSubmission("Acme Co", "ada@acme.ca")
	sub.ClientApplicationID = clientID
	first, err := svc.Create(ctx, sub)
	require.NoError(t, err)
	assert.False(t, first.Reused)
	assert.Equal(t, clientID, first.ApplicationID)

	var docsBefore, outboxBefore int64
	require.NoError(t, db.Model(&models.ExpectedDocument{}).Count(&docsBefore).Error)
	require.NoError(t, db.Model(&models.OutboxMessage{}).Count(&outboxBefore).Error)

	replay := persistedSubmission("Acme Co", "ada@acme.ca")
	replay.ClientApplicationID = clientID
	second, err := svc.Create(ctx, replay)
	require.NoError(t, err)
	assert.True(t, second.Reused)
	assert.Equal(t, first.ApplicationID, second.ApplicationID)
	assert.Equal(t, first.ExternalID, second.ExternalID)

	// The replay must not duplicate checklist or outbox rows.
	var docsAfter, outboxAfter int64
	require.NoError(t, db.Model(&models.ExpectedDocument{}).Count(&docsAfter).Error)
	require.NoError(t, db.Model(&models.OutboxMessage{}).Count(&outboxAfter).Error)
	assert.Equal(t, docsBefore, docsAfter)
	assert.Equal(t, outboxBefore, outboxAfter)
}

// TestCreate_BusinessInsertRace drives the branch where the name lookup
// misses but the insert hits the unique index because a concurrent
// submission committed first. A create callback plays the winner by
// inserting the conflicting row just before ours.
func TestCreate_BusinessInsertRace(t *testing.T) {
	db := newIntakeDB(t)

	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_business", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "businesses" {
			return
		}
		injected = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO businesses (name, normalized_name, created_at, updated_at) VALUES (?, ?, ?, ?)",
			"Acme Co", "acme co", time.Now(), time.Now())
	})
	require.NoError(t, err)

	svc := NewService(db, docreq.NewResolver(nil))
	result, err := svc.Create(context.Background(), persistedSubmission("Acme Co", "race@acme.ca"))
	require.NoError(t, err)
	assert.True(t, injected)

	var businesses int64
	require.NoError(t, db.Model(&models.Business{}).Count(&businesses).Error)
	assert.EqualValues(t, 1, businesses)

	var app models.Application
	require.NoError(t, db.First(&app, "id = ?", result.ApplicationID).Error)
	assert.Equal(t, result.Business.ID, app.BusinessID)
}

// TestCreate_ApplicationInsertRace covers a replayed client id that
// passes the existence check but loses the insert to the concurrent
// twin: the existing row comes back untouched instead of the duplicate
// key aborting the transaction.
func TestCreate_ApplicationInsertRace(t *testing.T) {
	db := newIntakeDB(t)
	raceID := uuid.NewString()

	injected := false
	err := db.Callback().Create().Before("gorm:create").Register("test:concurrent_application", func(tx *gorm.DB) {
		if injected || tx.Statement.Table != "applications" {
			return
		}
		injected = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			`INSERT INTO applications (id, external_id, business_id, status, stage, requested_amount, contact_email, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			raceID, "APP-0-WINNER", 1, models.ApplicationStatusDraft, models.StageNew,
			50000.0, "first@acme.ca", time.Now(), time.Now())
	})
	require.NoError(t, err)

	svc := NewService(db, docreq.NewResolver(nil))
	sub := persistedSubmission("Acme Co", "second@acme.ca")
	sub.ClientApplicationID = raceID

	result, err := svc.Create(context.Background(), sub)
	require.NoError(t, err)
	assert.True(t, injected)
	assert.True(t, result.Reused)
	assert.Equal(t, raceID, result.ApplicationID)
	assert.Equal(t, "APP-0-WINNER", result.ExternalID)

	// The losing request contributes no checklist or outbox rows; the
	// winner's transaction owns those.
	var docs, outbox int64
	require.NoError(t, db.Model(&models.ExpectedDocument{}).Count(&docs).Error)
	require.NoError(t, db.Model(&models.OutboxMessage{}).Count(&outbox).Error)
	assert.Zero(t, docs)
	assert.Zero(t, outbox)
}
