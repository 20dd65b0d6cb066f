package enrollment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/enrollment"
	"github.com/cema-health/program-manager/internal/domain/notification"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type EnrollInput struct {
	ClientID   uint
	ProgramIDs []uint
}

type EnrollResult struct {
	Enrollments []models.Enrollment
}

// ======================================================
// USE CASE
// ======================================================

type EnrollClient struct {
	repo   domain.Repository
	notify notification.Repository
	authz  *authz.Authorizer
	audit  audit.Recorder
	clock  timezone.Clock
	log    *slog.Logger
}

func NewEnrollClient(
	repo domain.Repository,
	notify notification.Repository,
	az *authz.Authorizer,
	rec audit.Recorder,
	clock timezone.Clock,
	log *slog.Logger,
) *EnrollClient {
	return &EnrollClient{
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

func (uc *EnrollClient) Execute(
	ctx context.Context,
	p authz.Principal,
	in EnrollInput,
) (*EnrollResult, error) {

	if err := uc.authz.Require(p, authz.ResourceEnrollment, authz.ActionCreate); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	programIDs := domain.UniqueIDs(in.ProgramIDs)
	if len(programIDs) == 0 {
		return nil, httperr.Validation("no_programs_selected", "No programs selected.")
	}

	// --------------------------------------------------
	// 2. Client and programs must exist
	// --------------------------------------------------
	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("client_not_found", "Client not found.")
		}
		return nil, err
	}

	programs, err := uc.repo.GetProgramsByIDs(ctx, programIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Program, len(programs))
	for _, pr := range programs {
		byID[pr.ID] = pr
	}
	for _, id := range programIDs {
		if _, ok := byID[id]; !ok {
			return nil, httperr.NotFound(
				"program_not_found",
				fmt.Sprintf("Program not found: %d", id),
			)
		}
	}

	// --------------------------------------------------
	// 3. Conflict check, once, before any write
	// --------------------------------------------------
	if err := uc.assertNotEnrolled(ctx, in.ClientID, programIDs, byID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. All-or-nothing insert
	// --------------------------------------------------
	now := uc.clock.Now()
	rows := make([]models.Enrollment, 0, len(programIDs))
	for _, id := range programIDs {
		rows = append(rows, domain.New(in.ClientID, byID[id], now))
	}

	if err := uc.repo.CreateEnrollments(ctx, rows); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			// Lost a race; name the programs when possible.
			if named := uc.assertNotEnrolled(ctx, in.ClientID, programIDs, byID); named != nil {
				return nil, named
			}
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5. Audit + notification
	// --------------------------------------------------
	names := make([]string, 0, len(rows))
	for _, id := range programIDs {
		names = append(names, byID[id].Name)
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "client_enrolled",
		Entity:   "client",
		EntityID: audit.Ptr(in.ClientID),
		Metadata: map[string]any{"program_ids": programIDs},
	})

	uc.notifyClient(ctx, in.ClientID, notification.EnrolledMessage(names))

	return &EnrollResult{Enrollments: rows}, nil
}

func (uc *EnrollClient) assertNotEnrolled(
	ctx context.Context,
	clientID uint,
	programIDs []uint,
	byID map[uint]models.Program,
) error {

	active, err := uc.repo.ActiveProgramIDs(ctx, clientID, programIDs)
	if err != nil {
		return err
	}
	if len(active) == 0 {
		return nil
	}

	activeSet := make(map[uint]struct{}, len(active))
	for _, id := range active {
		activeSet[id] = struct{}{}
	}

	conflicts := make([]domain.ConflictingProgram, 0, len(active))
	for _, id := range programIDs {
		if _, ok := activeSet[id]; ok {
			conflicts = append(conflicts, domain.ConflictingProgram{ID: id, Name: byID[id].Name})
		}
	}
	return domain.ConflictError(conflicts)
}

func (uc *EnrollClient) notifyClient(ctx context.Context, clientID uint, message string) {
	ok, err := uc.notify.ClientAccountExists(ctx, clientID)
	if err == nil && ok {
		err = uc.notify.Create(ctx, notification.New(clientID, message))
	}
	if err != nil {
		uc.log.WarnContext(ctx, "enrollment notification failed",
			slog.Uint64("client_id", uint64(clientID)),
			slog.Any("error", err),
		)
	}
}
