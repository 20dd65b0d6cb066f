package enrollment

import (
	"context"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	// -------- Lookups --------
	GetClient(ctx context.Context, clientID uint) (*models.Client, error)

	GetProgramsByIDs(ctx context.Context, ids []uint) ([]models.Program, error)

	// ActiveProgramIDs returns which of programIDs the client is currently
	// enrolled in.
	ActiveProgramIDs(
		ctx context.Context,
		clientID uint,
		programIDs []uint,
	) ([]uint, error)

	// -------- Writes --------
	// CreateEnrollments inserts all rows in one transaction. A concurrent
	// duplicate active enrollment surfaces as a Conflict BusinessError.
	CreateEnrollments(ctx context.Context, rows []models.Enrollment) error

	GetEnrollment(ctx context.Context, id uint) (*models.Enrollment, error)

	// TransitionStatus moves the enrollment from one status to another and
	// reports false when the row was no longer in the from status.
	TransitionStatus(
		ctx context.Context,
		id uint,
		from status.ID,
		to status.ID,
	) (bool, error)

	// -------- Reads --------
	ListByClient(ctx context.Context, clientID uint) ([]models.Enrollment, error)
}
