package appointment

import (
	"context"

	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	// -------- Lookups --------
	GetClient(ctx context.Context, id uint) (*models.Client, error)
	GetDoctor(ctx context.Context, id uint) (*models.User, error)
	GetProgram(ctx context.Context, id uint) (*models.Program, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// UpdateAppointment persists status and notes only when the stored status
	// still equals fromStatus; false means it changed concurrently.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		fromStatus uint,
	) (bool, error)
}
