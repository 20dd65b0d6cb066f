package appointment

import (
	"context"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/appointment"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

type ConfirmAppointment struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder
}

func NewConfirmAppointment(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, authz: az, audit: rec}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	p authz.Principal,
	appointmentID uint,
) (*models.Appointment, error) {

	return apply(ctx, uc.repo, uc.authz, uc.audit, p, appointmentID, "appointment_confirmed", domain.Confirm)
}

type CancelAppointment struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder
}

func NewCancelAppointment(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
) *CancelAppointment {
	return &CancelAppointment{repo: repo, authz: az, audit: rec}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	p authz.Principal,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	cancel := func(ap *models.Appointment) error { return domain.Cancel(ap, reason) }
	return apply(ctx, uc.repo, uc.authz, uc.audit, p, appointmentID, "appointment_cancelled", cancel)
}

func apply(
	ctx context.Context,
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	p authz.Principal,
	appointmentID uint,
	action string,
	transition func(*models.Appointment) error,
) (*models.Appointment, error) {

	if err := az.Require(p, authz.ResourceAppointment, authz.ActionUpdate); err != nil {
		return nil, err
	}

	ap, err := repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, notFoundOr(err, "appointment_not_found", "Appointment not found.")
	}

	from := ap.StatusID
	if err := transition(ap); err != nil {
		return nil, err
	}

	ok, err := repo.UpdateAppointment(ctx, ap, from)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.InvalidState("invalid_state", "Appointment status changed concurrently.")
	}

	rec.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   action,
		Entity:   "appointment",
		EntityID: audit.Ptr(ap.ID),
	})

	return ap, nil
}
