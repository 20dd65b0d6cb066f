package program

import (
	"context"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/program"
)

// DeleteProgram removes the program together with its enrollments and
// appointments.
type DeleteProgram struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder
}

func NewDeleteProgram(repo domain.Repository, az *authz.Authorizer, rec audit.Recorder) *DeleteProgram {
	return &DeleteProgram{repo: repo, authz: az, audit: rec}
}

func (uc *DeleteProgram) Execute(ctx context.Context, p authz.Principal, id uint) error {
	if err := uc.authz.Require(p, authz.ResourceProgram, authz.ActionDelete); err != nil {
		return err
	}

	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound()
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "program_deleted",
		Entity:   "program",
		EntityID: audit.Ptr(id),
	})

	return nil
}
