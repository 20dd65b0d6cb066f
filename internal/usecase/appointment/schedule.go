package appointment

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/appointment"
	"github.com/cema-health/program-manager/internal/domain/notification"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ScheduleInput struct {
	ClientID  uint
	DoctorID  uint
	ProgramID uint
	Date      time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type ScheduleAppointment struct {
	repo   domain.Repository
	notify notification.Repository
	authz  *authz.Authorizer
	audit  audit.Recorder
	clock  timezone.Clock
	log    *slog.Logger
}

func NewScheduleAppointment(
	repo domain.Repository,
	notify notification.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
	log *slog.Logger,
) *ScheduleAppointment {
	return &ScheduleAppointment{
		repo:   repo,
		notify: notify,
		authz:  az,
		audit:  rec,
		clock:  clock,
		log:    log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *ScheduleAppointment) Execute(
	ctx context.Context,
	p authz.Principal,
	in ScheduleInput,
) (*models.Appointment, error) {

	if err := uc.authz.Require(p, authz.ResourceAppointment, authz.ActionCreate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1. Date
	// --------------------------------------------------
	if err := domain.ValidateDate(in.Date, timezone.Today(uc.clock)); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. Referenced rows
	// --------------------------------------------------
	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, notFoundOr(err, "client_not_found", "Client not found.")
	}
	if _, err := uc.repo.GetDoctor(ctx, in.DoctorID); err != nil {
		return nil, notFoundOr(err, "doctor_not_found", "Doctor not found.")
	}
	prog, err := uc.repo.GetProgram(ctx, in.ProgramID)
	if err != nil {
		return nil, notFoundOr(err, "program_not_found", "Program not found.")
	}

	// --------------------------------------------------
	// 3. Create (status centralized in the domain)
	// --------------------------------------------------
	doctorID := in.DoctorID
	ap := &models.Appointment{
		ClientID:        in.ClientID,
		DoctorID:        &doctorID,
		ProgramID:       in.ProgramID,
		AppointmentDate: in.Date,
		StatusID:        domain.InitialStatus().Uint(),
		Notes:           strings.TrimSpace(in.Notes),
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit + notification
	// --------------------------------------------------
	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})

	ok, err := uc.notify.ClientAccountExists(ctx, in.ClientID)
	if err == nil && ok {
		err = uc.notify.Create(ctx, notification.New(
			in.ClientID,
			notification.AppointmentMessage(prog.Name, in.Date),
		))
	}
	if err != nil {
		uc.log.WarnContext(ctx, "appointment notification failed",
			slog.Uint64("appointment_id", uint64(ap.ID)),
			slog.Any("error", err),
		)
	}

	return ap, nil
}

func notFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFound(code, message)
	}
	return err
}
