package program

import (
	"context"

	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	// ExistsByName compares names case-insensitively.
	ExistsByName(ctx context.Context, name string) (bool, error)

	Create(ctx context.Context, p *models.Program) error
	GetByID(ctx context.Context, id uint) (*models.Program, error)
	Update(ctx context.Context, p *models.Program) error

	// Delete removes the program; enrollments and appointments referencing it
	// cascade. It reports false when no row matched.
	Delete(ctx context.Context, id uint) (bool, error)

	List(ctx context.Context) ([]models.Program, error)
}
