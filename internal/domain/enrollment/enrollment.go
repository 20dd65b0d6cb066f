package enrollment

import (
	"time"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

// ===============================
// Rules
// ===============================

// EndDate is start plus the program duration in whole weeks.
func EndDate(start time.Time, durationWeeks int) time.Time {
	return start.AddDate(0, 0, 7*durationWeeks)
}

// New builds an active enrollment starting on the day of now.
func New(clientID uint, p models.Program, now time.Time) models.Enrollment {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return models.Enrollment{
		ClientID:       clientID,
		ProgramID:      p.ID,
		StatusID:       status.Enrolled.Uint(),
		EnrollmentDate: now,
		StartDate:      start,
		EndDate:        EndDate(start, p.Duration),
	}
}

// UniqueIDs drops repeated ids, keeping first-seen order. Zero is kept so the
// program lookup reports it as missing.
func UniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ===============================
// Transitions
// ===============================

func CanLeave(current status.ID) error {
	if current != status.Enrolled {
		return httperr.InvalidState(
			"enrollment_not_active",
			"This enrollment cannot be removed because it is not active.",
		)
	}
	return nil
}

func Drop(e *models.Enrollment) error {
	if err := CanLeave(status.ID(e.StatusID)); err != nil {
		return err
	}
	e.StatusID = status.Dropped.Uint()
	return nil
}

func Complete(e *models.Enrollment) error {
	if err := CanLeave(status.ID(e.StatusID)); err != nil {
		return err
	}
	e.StatusID = status.Completed.Uint()
	return nil
}

// ===============================
// Conflicts
// ===============================

type ConflictingProgram struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func ConflictError(programs []ConflictingProgram) error {
	return httperr.Conflict(
		"enrollment_conflict",
		conflictMessage(programs),
		programs,
	)
}

func conflictMessage(programs []ConflictingProgram) string {
	msg := "Client is already enrolled in: "
	for i, p := range programs {
		if i > 0 {
			msg += ", "
		}
		msg += p.Name
	}
	return msg
}
