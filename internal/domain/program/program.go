package program

import (
	"strings"
	"time"

	"github.com/cema-health/program-manager/internal/httperr"
)

const MaxNameLength = 100

type Input struct {
	Name        string
	Description string
	StartDate   time.Time
	Duration    int
}

// Validate checks the fields shared by add and edit. today is midnight of the
// clinic's current day.
func Validate(in Input, today time.Time) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return httperr.Validation("program_name_required", "Program name is required.")
	}
	if len(name) > MaxNameLength {
		return httperr.Validation("program_name_too_long", "Program name must be at most 100 characters.")
	}
	if in.Duration <= 0 {
		return httperr.Validation("invalid_duration", "Duration must be a positive number of weeks.")
	}
	if in.StartDate.Before(today) {
		return httperr.Validation("start_date_in_past", "Start date cannot be in the past.")
	}
	return nil
}

func NameTaken(name string) error {
	return httperr.Conflict(
		"program_exists",
		"A program named "+strings.TrimSpace(name)+" already exists.",
		nil,
	)
}

func NotFound() error {
	return httperr.NotFound("program_not_found", "Program not found.")
}
