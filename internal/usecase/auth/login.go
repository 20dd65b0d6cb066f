package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/domain/user"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/session"
	"github.com/cema-health/program-manager/internal/timezone"
	"github.com/cema-health/program-manager/internal/token"
)

type LoginInput struct {
	Username string
	Password string
}

type LoginResult struct {
	User      dto.UserView
	SessionID string
	Token     string
	ExpiresAt time.Time
}

func invalidCredentials() error {
	return httperr.Unauthenticated("invalid_credentials", "Invalid username or password.")
}

// ======================================================
// LOGIN
// ======================================================

type Login struct {
	users    user.Repository
	sessions session.Store
	tokens   *token.Issuer
	audit    audit.Recorder
	clock    timezone.Clock
	log      *slog.Logger
}

func NewLogin(
	users user.Repository,
	sessions session.Store,
	tokens *token.Issuer,
	rec audit.Recorder,
	clock timezone.Clock,
	log *slog.Logger,
) *Login {
	return &Login{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		audit:    rec,
		clock:    clock,
		log:      log,
	}
}

func (uc *Login) Execute(ctx context.Context, in LoginInput) (*LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, httperr.Validation("credentials_required", "Username and password are required.")
	}

	u, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, invalidCredentials()
	}

	role, err := authz.ParseRole(u.Role)
	if err != nil {
		return nil, httperr.Internal("invalid_role", "Account is misconfigured.")
	}
	p := authz.Principal{UserID: u.ID, Role: role}

	now := uc.clock.Now()

	sess, err := uc.sessions.Create(ctx, p, now)
	if err != nil {
		return nil, err
	}

	signed, exp, err := uc.tokens.Issue(p, sess.ID, now)
	if err != nil {
		_ = uc.sessions.Delete(ctx, sess.ID)
		return nil, err
	}

	if err := uc.users.TouchLastLogin(ctx, u.ID, now); err != nil {
		uc.log.WarnContext(ctx, "last login update failed",
			slog.Uint64("user_id", uint64(u.ID)),
			slog.Any("error", err),
		)
	}
	u.LastLogin = &now

	uc.audit.Record(ctx, audit.Event{
		UserID:   audit.Ptr(u.ID),
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: audit.Ptr(u.ID),
	})

	return &LoginResult{
		User:      dto.NewUserView(*u),
		SessionID: sess.ID,
		Token:     signed,
		ExpiresAt: exp,
	}, nil
}

// ======================================================
// LOGOUT
// ======================================================

type Logout struct {
	sessions session.Store
}

func NewLogout(sessions session.Store) *Logout {
	return &Logout{sessions: sessions}
}

// Execute drops the session, which also revokes the bearer token issued with
// it. An empty id is a no-op.
func (uc *Logout) Execute(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return uc.sessions.Delete(ctx, sessionID)
}
