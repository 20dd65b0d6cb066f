package notification

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/notification"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

// ListNotifications returns the caller's own notifications, newest first.
type ListNotifications struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewListNotifications(repo domain.Repository, az *authz.Authorizer) *ListNotifications {
	return &ListNotifications{repo: repo, authz: az}
}

func (uc *ListNotifications) Execute(ctx context.Context, p authz.Principal) ([]models.Notification, error) {
	if err := uc.authz.Require(p, authz.ResourceNotification, authz.ActionList); err != nil {
		return nil, err
	}
	return uc.repo.ListForUser(ctx, p.UserID)
}

// MarkNotificationRead flips a notification the caller owns to is-read.
// Another user's notification is reported as not found.
type MarkNotificationRead struct {
	repo  domain.Repository
	authz *authz.Authorizer
}

func NewMarkNotificationRead(repo domain.Repository, az *authz.Authorizer) *MarkNotificationRead {
	return &MarkNotificationRead{repo: repo, authz: az}
}

func (uc *MarkNotificationRead) Execute(ctx context.Context, p authz.Principal, id uint) (*models.Notification, error) {
	if err := uc.authz.Require(p, authz.ResourceNotification, authz.ActionUpdate); err != nil {
		return nil, err
	}

	n, err := uc.repo.GetForUser(ctx, id, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("notification_not_found", "Notification not found.")
		}
		return nil, err
	}

	before := n.StatusID
	if err := domain.MarkRead(n); err != nil {
		return nil, err
	}
	if n.StatusID == before {
		return n, nil
	}

	if err := uc.repo.UpdateStatus(ctx, n.ID, n.StatusID); err != nil {
		return nil, err
	}
	return n, nil
}
