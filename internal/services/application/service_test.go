package application

import (
	"testing"

	"boreal/internal/models"
	"boreal/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) GetByID(id string) (*models.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepo) GetWithBusiness(id string) (*models.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Application), args.Error(1)
}

func (m *MockApplicationRepo) Update(app *models.Application) error {
	return m.Called(app).Error(0)
}

func (m *MockApplicationRepo) List(filter repositories.ApplicationFilter) ([]models.Application, int64, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Application), args.Get(1).(int64), args.Error(2)
}

func (m *MockApplicationRepo) CountDocuments(applicationID string) (int64, error) {
	args := m.Called(applicationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepo) CountExpectedDocuments(applicationID string) (int64, error) {
	args := m.Called(applicationID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockApplicationRepo) ExpectedDocuments(applicationID string) ([]models.ExpectedDocument, error) {
	args := m.Called(applicationID)
	return args.Get(0).([]models.ExpectedDocument), args.Error(1)
}

const testAppID = "b3a3f1c2-9f7e-4d2a-8e6b-1a2b3c4d5e6f"

func draftApplication() *models.Application {
	return &models.Application{
		ID:         testAppID,
		ExternalID: "APP-1700000000-B3A3F1C2",
		Status:     models.ApplicationStatusDraft,
		Stage:      models.StageNew,
		BusinessID: 7,
		Business:   &models.Business{ID: 7, Name: "Acme Co"},
	}
}

func TestFinalize_DraftToSubmitted(t *testing.T) {
	repo := new(MockApplicationRepo)
	app := draftApplication()
	repo.On("GetWithBusiness", testAppID).Return(app, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CountDocuments", testAppID).Return(int64(3), nil)
	repo.On("CountExpectedDocuments", testAppID).Return(int64(3), nil)

	service := NewService(repo, nil)
	result, err := service.Finalize(testAppID, "")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusSubmitted, result.Status)
	assert.Equal(t, models.StageInReview, result.Stage)
	assert.True(t, result.IsReadyForLenders)
	assert.NotNil(t, app.SubmittedAt)
	repo.AssertExpectations(t)
}

func TestFinalize_NotReadyWhenDocumentsMissing(t *testing.T) {
	repo := new(MockApplicationRepo)
	repo.On("GetWithBusiness", testAppID).Return(draftApplication(), nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CountDocuments", testAppID).Return(int64(1), nil)
	repo.On("CountExpectedDocuments", testAppID).Return(int64(3), nil)

	service := NewService(repo, nil)
	result, err := service.Finalize(testAppID, "")
	require.NoError(t, err)

	assert.False(t, result.IsReadyForLenders)
	assert.Equal(t, int64(3), result.ExpectedDocuments)
	assert.Equal(t, int64(1), result.UploadedDocuments)
}

func TestFinalize_InvalidUUID(t *testing.T) {
	service := NewService(new(MockApplicationRepo), nil)

	_, err := service.Finalize("not-a-uuid", "")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFinalize_NotFound(t *testing.T) {
	repo := new(MockApplicationRepo)
	repo.On("GetWithBusiness", testAppID).Return(nil, gorm.ErrRecordNotFound)

	service := NewService(repo, nil)
	_, err := service.Finalize(testAppID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFinalize_RejectsNonDraft(t *testing.T) {
	repo := new(MockApplicationRepo)
	app := draftApplication()
	app.Status = models.ApplicationStatusSubmitted
	repo.On("GetWithBusiness", testAppID).Return(app, nil)

	service := NewService(repo, nil)
	_, err := service.Finalize(testAppID, "")
	assert.ErrorIs(t, err, ErrNotFinalizable)
}

func TestFinalize_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockApplicationRepo)
	repo.On("GetWithBusiness", testAppID).Return(draftApplication(), nil)

	service := NewService(repo, nil)
	_, err := service.Finalize(testAppID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFinalize_RejectsBackwardTarget(t *testing.T) {
	repo := new(MockApplicationRepo)
	repo.On("GetWithBusiness", testAppID).Return(draftApplication(), nil)

	service := NewService(repo, nil)
	_, err := service.Finalize(testAppID, models.ApplicationStatusDraft)
	assert.ErrorIs(t, err, ErrNotFinalizable)
}

func TestOverrideStatus_AllowsBackwardMove(t *testing.T) {
	repo := new(MockApplicationRepo)
	app := draftApplication()
	app.Status = models.ApplicationStatusApproved
	repo.On("GetWithBusiness", testAppID).Return(app, nil)
	repo.On("Update", mock.Anything).Return(nil)
	repo.On("CountDocuments", testAppID).Return(int64(0), nil)
	repo.On("CountExpectedDocuments", testAppID).Return(int64(0), nil)

	service := NewService(repo, nil)
	result, err := service.OverrideStatus(testAppID, models.ApplicationStatusInReview, "", "staff@boreal.test")
	require.NoError(t, err)

	assert.Equal(t, models.ApplicationStatusInReview, result.Status)
	// Zero expected documents never reads as ready.
	assert.False(t, result.IsReadyForLenders)
}

func TestOverrideStatus_RejectsUnknownStatus(t *testing.T) {
	service := NewService(new(MockApplicationRepo), nil)

	_, err := service.OverrideStatus(testAppID, "bogus", "", "staff@boreal.test")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
