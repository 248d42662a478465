package models

import "github.com/golang-jwt/jwt/v5"

// Staff permissions.
const (
	PermissionApplicationRead  = "application:read"
	PermissionApplicationWrite = "application:write"
	PermissionLenderRead       = "lender:read"
	PermissionLenderWrite      = "lender:write"
	PermissionContactRead      = "contact:read"
	PermissionCommsWrite       = "comms:write"
	PermissionAdminWrite       = "admin:write"
)

// StaffClaims are the JWT claims carried by staff access tokens.
type StaffClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission reports whether the claims include a permission.
func (c *StaffClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns the permission set for a role.
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionApplicationRead,
			PermissionApplicationWrite,
			PermissionLenderRead,
			PermissionLenderWrite,
			PermissionContactRead,
			PermissionCommsWrite,
			PermissionAdminWrite,
		}
	case RoleAgent:
		return []string{
			PermissionApplicationRead,
			PermissionApplicationWrite,
			PermissionLenderRead,
			PermissionContactRead,
			PermissionCommsWrite,
		}
	default:
		return nil
	}
}
