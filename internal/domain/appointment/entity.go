package appointment

import (
	"strings"
	"time"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

// DoctorUnknown is shown when an appointment's doctor account was removed.
const DoctorUnknown = "N/A"

// ===============================
// Domain Actions
// ===============================

func Confirm(ap *models.Appointment) error {
	if err := CanConfirm(status.ID(ap.StatusID)); err != nil {
		return err
	}
	ap.StatusID = status.Confirmed.Uint()
	return nil
}

func Cancel(ap *models.Appointment, reason string) error {
	if err := CanCancel(status.ID(ap.StatusID)); err != nil {
		return err
	}
	ap.StatusID = status.Cancelled.Uint()
	if reason = strings.TrimSpace(reason); reason != "" {
		if ap.Notes != "" {
			ap.Notes += "\n"
		}
		ap.Notes += "Cancelled: " + reason
	}
	return nil
}

// ValidateDate rejects dates before today. Both values are compared as
// calendar days.
func ValidateDate(date, today time.Time) error {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, today.Location())
	if d.Before(today) {
		return httperr.Validation("appointment_date_in_past", "Appointment date cannot be in the past.")
	}
	return nil
}

// DoctorName returns the doctor's username or DoctorUnknown.
func DoctorName(ap models.Appointment) string {
	if ap.Doctor == nil || ap.Doctor.Username == "" {
		return DoctorUnknown
	}
	return ap.Doctor.Username
}
