// Package auth handles staff authentication: credentials, token pairs
// and token-version based session invalidation.
package auth

import (
	"errors"
	"log"

	"boreal/internal/models"
	"boreal/internal/repositories"
	"boreal/internal/utils"
	"boreal/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Login(email, password string) (*models.StaffUser, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	CreateStaff(email, password, firstName, lastName, role string) (*models.StaffUser, error)
	GetUserByID(userID uint) (*models.StaffUser, error)
	GetUserTokenVersion(userID uint) (int, error)
}

type service struct {
	staffRepo repositories.StaffRepository
}

func NewService(staffRepo repositories.StaffRepository) Service {
	return &service{staffRepo: staffRepo}
}

func (s *service) Login(email, password string) (*models.StaffUser, string, string, error) {
	user, err := s.staffRepo.GetByEmail(email)
	if err != nil {
		log.Printf("Login failed: staff user not found for %s", email)
		return nil, "", "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for staff user %d", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&models.StaffClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.staffRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(&models.StaffClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	})
}

func (s *service) Logout(userID uint) error {
	return s.staffRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.staffRepo.GetByID(userID)
	if err != nil {
		return errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	if len(newPassword) < validation.MinPasswordLength || !validation.HasSpecialChar(newPassword) {
		return errors.New("password must be at least 8 characters and contain special characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens

	if err := s.staffRepo.Update(user); err != nil {
		return errors.New("failed to update password")
	}

	return nil
}

func (s *service) CreateStaff(email, password, firstName, lastName, role string) (*models.StaffUser, error) {
	v := validation.New()
	v.Email("email", email)
	v.Password("password", password)
	if role != models.RoleAdmin && role != models.RoleAgent {
		v.AddError("role", "must be admin or agent")
	}
	if !v.Valid() {
		for field, message := range v.Errors {
			return nil, &validation.ValidationError{Field: field, Message: message}
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &models.StaffUser{
		Email:     email,
		Password:  string(hashedPassword),
		FirstName: firstName,
		LastName:  lastName,
		Role:      role,
	}
	if err := s.staffRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUserByID(userID uint) (*models.StaffUser, error) {
	return s.staffRepo.GetByID(userID)
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.staffRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}
