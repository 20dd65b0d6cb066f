package client

import (
	"context"

	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	Search(ctx context.Context, f SearchFilter) ([]models.Client, error)

	QuickSearch(ctx context.Context, q string) ([]models.Client, error)

	// GetProfile loads the client with enrollments (program, status) and
	// appointments (status, doctor).
	GetProfile(ctx context.Context, id uint) (*models.Client, error)

	GetByID(ctx context.Context, id uint) (*models.Client, error)

	Create(ctx context.Context, c *models.Client) error
}
