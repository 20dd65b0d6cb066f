package user

import (
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

// CanDelete refuses to remove the last remaining admin.
func CanDelete(u *models.User, adminCount int64) error {
	if authz.Role(u.Role) == authz.RoleAdmin && adminCount <= 1 {
		return httperr.InvalidState(
			"last_admin",
			"Cannot delete the last remaining admin.",
		)
	}
	return nil
}

func UsernameTaken() error {
	return httperr.Conflict("username_taken", "Username already exists.", nil)
}

func NotFound() error {
	return httperr.NotFound("user_not_found", "User not found.")
}
