package program

import (
	"context"
	"strings"
	"time"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/program"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

type ProgramInput struct {
	Name        string
	Description string
	StartDate   time.Time
	Duration    int
}

func (in ProgramInput) toDomain() domain.Input {
	return domain.Input{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		Duration:    in.Duration,
	}
}

// ======================================================
// ADD
// ======================================================

type AddProgram struct {
	repo  domain.Repository
	authz *authz.Authorizer
	audit audit.Recorder
	clock timezone.Clock
}

func NewAddProgram(
	repo domain.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
) *AddProgram {
	return &AddProgram{repo: repo, authz: az, audit: rec, clock: clock}
}

func (uc *AddProgram) Execute(
	ctx context.Context,
	p authz.Principal,
	in ProgramInput,
) (*models.Program, error) {

	if err := uc.authz.Require(p, authz.ResourceProgram, authz.ActionCreate); err != nil {
		return nil, err
	}

	if err := domain.Validate(in.toDomain(), timezone.Today(uc.clock)); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	exists, err := uc.repo.ExistsByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NameTaken(name)
	}

	prog := &models.Program{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		Duration:    in.Duration,
	}

	if err := uc.repo.Create(ctx, prog); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, domain.NameTaken(name)
		}
		return nil, err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "program_created",
		Entity:   "program",
		EntityID: audit.Ptr(prog.ID),
	})

	return prog, nil
}
