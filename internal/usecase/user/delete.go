package user

import (
	"context"
	"fmt"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/user"
)

// SessionRevoker drops every login session of a user.
type SessionRevoker interface {
	DeleteForUser(ctx context.Context, userID uint) error
}

// DeleteUser removes the account and, for client accounts, the client
// profile in the same transaction. The last admin cannot be removed. The
// user's sessions are revoked afterwards, which invalidates their bearer
// tokens as well.
type DeleteUser struct {
	repo     domain.Repository
	sessions SessionRevoker
	authz    *authz.Authorizer
	audit    audit.Recorder
}

func NewDeleteUser(
	repo domain.Repository,
	sessions SessionRevoker,
	az *authz.Authorizer,
	rec audit.Recorder,
) *DeleteUser {
	return &DeleteUser{repo: repo, sessions: sessions, authz: az, audit: rec}
}

func (uc *DeleteUser) Execute(ctx context.Context, p authz.Principal, id uint) error {
	if err := uc.authz.Require(p, authz.ResourceUser, authz.ActionDelete); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(p.UserID),
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: audit.Ptr(id),
	})

	if err := uc.sessions.DeleteForUser(ctx, id); err != nil {
		return fmt.Errorf("revoke sessions of user %d: %w", id, err)
	}

	return nil
}
