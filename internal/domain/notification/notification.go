package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Notification) error

	// ClientAccountExists reports whether a client-role user shares the
	// client's id.
	ClientAccountExists(ctx context.Context, clientID uint) (bool, error)

	ListForUser(ctx context.Context, userID uint) ([]models.Notification, error)

	GetForUser(ctx context.Context, id, userID uint) (*models.Notification, error)

	UpdateStatus(ctx context.Context, id uint, statusID uint) error
}

func New(userID uint, message string) *models.Notification {
	return &models.Notification{
		UserID:   userID,
		Message:  message,
		StatusID: status.Sent.Uint(),
	}
}

func EnrolledMessage(programNames []string) string {
	return "You have been enrolled in: " + strings.Join(programNames, ", ") + "."
}

func AppointmentMessage(programName string, date time.Time) string {
	return fmt.Sprintf("An appointment for %s has been scheduled on %s.", programName, date.Format("2006-01-02"))
}

func MarkRead(n *models.Notification) error {
	switch status.ID(n.StatusID) {
	case status.Sent:
		n.StatusID = status.IsRead.Uint()
		return nil
	case status.IsRead:
		return nil
	default:
		return httperr.InvalidState("invalid_state", "Notification cannot be marked as read.")
	}
}
