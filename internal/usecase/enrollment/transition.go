package enrollment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/enrollment"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

// ChangeEnrollmentStatus backs both Drop and Complete: an active enrollment
// moves to a terminal status and the row is kept.
type ChangeEnrollmentStatus struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder

	transition func(*models.Enrollment) error
	action     string
}

func NewDropEnrollment(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
) *ChangeEnrollmentStatus {
	return &ChangeEnrollmentStatus{
		repo:       repo,
		authz:      az,
		audit:      rec,
		transition: domain.Drop,
		action:     "enrollment_dropped",
	}
}

func NewCompleteEnrollment(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
) *ChangeEnrollmentStatus {
	return &ChangeEnrollmentStatus{
		repo:       repo,
		authz:      az,
		audit:      rec,
		transition: domain.Complete,
		action:     "enrollment_completed",
	}
}

func (uc *ChangeEnrollmentStatus) Execute(
	ctx context.Context,
	p authz.Principal,
	enrollmentID uint,
) (*models.Enrollment, error) {

	if err := uc.authz.Require(p, authz.ResourceEnrollment, authz.ActionUpdate); err != nil {
		return nil, err
	}

	e, err := uc.repo.GetEnrollment(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("enrollment_not_found", "Enrollment not found.")
		}
		return nil, err
	}

	from := status.ID(e.StatusID)
	if err := uc.transition(e); err != nil {
		return nil, err
	}

	ok, err := uc.repo.TransitionStatus(ctx, e.ID, from, status.ID(e.StatusID))
	if err != nil {
		return nil, err
	}
	if !ok {
		// Changed by another request between read and write.
		return nil, domain.CanLeave(status.Dropped)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   uc.action,
		Entity:   "enrollment",
		EntityID: audit.Ptr(e.ID),
	})

	return e, nil
}
