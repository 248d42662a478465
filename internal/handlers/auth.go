// Package handlers contains the Fiber HTTP handlers for the public
// intake endpoint and the staff portal API.
package handlers

import (
	"log"

	"boreal/internal/models"
	"boreal/internal/services/auth"
	"boreal/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a staff user and returns JWT tokens.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if input.Email == "" || input.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Email and password are required",
		})
	}

	user, accessToken, refreshToken, err := h.authService.Login(input.Email, input.Password)
	if err != nil {
		if err.Error() == "invalid credentials" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid email or password",
			})
		}
		log.Printf("Login failed for %s: %v", input.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Authentication failed",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user": fiber.Map{
			"id":          user.ID,
			"email":       user.Email,
			"role":        user.Role,
			"permissions": models.GetDefaultPermissions(user.Role),
		},
	})
}

// Refresh exchanges a refresh token for a new token pair.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil || input.RefreshToken == "" {
		return response.Unauthorized(c)
	}

	accessToken, refreshToken, err := h.authService.RefreshTokens(input.RefreshToken)
	if err != nil {
		log.Printf("Token refresh failed: %v", err)
		return response.Unauthorized(c)
	}

	return response.Success(c, "Tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout bumps the user's token version, invalidating all sessions.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	if err := h.authService.Logout(userID); err != nil {
		log.Printf("Logout failed for staff user %d: %v", userID, err)
		return response.ServerError(c, "Logout failed")
	}

	return response.Success(c, "Logged out", nil)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.authService.ChangePassword(userID, input.OldPassword, input.NewPassword); err != nil {
		return response.BadRequest(c, err.Error())
	}

	return response.Success(c, "Password changed", nil)
}

// CreateStaff registers a new staff user. Admin only.
func (h *AuthHandler) CreateStaff(c *fiber.Ctx) error {
	var input struct {
		Email     string `json:"email"`
		Password  string `json:"password"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Role      string `json:"role"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	user, err := h.authService.CreateStaff(input.Email, input.Password, input.FirstName, input.LastName, input.Role)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	})
}

// Me returns the authenticated staff user's profile.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c)
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		return response.NotFound(c, "User not found")
	}

	return response.Success(c, "Profile retrieved", fiber.Map{
		"id":         user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       user.Role,
	})
}

// staffEmailFromLocals pulls the acting staff email out of the request
// context for audit logging. Empty when the route is unauthenticated.
func staffEmailFromLocals(c *fiber.Ctx) string {
	claims, ok := c.Locals("claims").(*models.StaffClaims)
	if !ok {
		return ""
	}
	return claims.Email
}
