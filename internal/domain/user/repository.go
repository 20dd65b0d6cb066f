package user

import (
	"context"
	"time"

	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create inserts the user and, when profile is non-nil, a Client sharing
	// the user's id, in one transaction.
	Create(ctx context.Context, u *models.User, profile *models.Client) error

	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)

	// Delete removes the user and its client profile atomically, applying
	// CanDelete under a row lock.
	Delete(ctx context.Context, id uint) error

	TouchLastLogin(ctx context.Context, id uint, at time.Time) error
}
