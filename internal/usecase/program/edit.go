package program

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/program"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

// EditProgram re-validates dates and duration. The name is not re-checked
// for uniqueness.
type EditProgram struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder
	clock timezone.Clock
}

func NewEditProgram(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
) *EditProgram {
	return &EditProgram{repo: repo, authz: az, audit: rec, clock: clock}
}

func (uc *EditProgram) Execute(
	ctx context.Context,
	p authz.Principal,
	id uint,
	in ProgramInput,
) (*models.Program, error) {

	if err := uc.authz.Require(p, authz.ResourceProgram, authz.ActionUpdate); err != nil {
		return nil, err
	}

	prog, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFound()
		}
		return nil, err
	}

	if err := domain.Validate(in.toDomain(), timezone.Today(uc.clock)); err != nil {
		return nil, err
	}

	prog.Name = strings.TrimSpace(in.Name)
	prog.Description = strings.TrimSpace(in.Description)
	prog.StartDate = in.StartDate
	prog.Duration = in.Duration

	if err := uc.repo.Update(ctx, prog); err != nil {
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "program_updated",
		Entity:   "program",
		EntityID: audit.Ptr(prog.ID),
	})

	return prog, nil
}
