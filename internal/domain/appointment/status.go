package appointment

import (
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
)

// ===============================
// Validations
// ===============================

func InitialStatus() status.ID {
	return status.Pending
}

func CanConfirm(current status.ID) error {
	if current != status.Pending {
		return invalidTransition(current, status.Confirmed)
	}
	return nil
}

func CanCancel(current status.ID) error {
	if current != status.Pending && current != status.Confirmed {
		return invalidTransition(current, status.Cancelled)
	}
	return nil
}

func invalidTransition(from, to status.ID) error {
	return httperr.InvalidState(
		"invalid_state",
		"Appointment cannot move from "+from.String()+" to "+to.String()+".",
	)
}
