package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/logging"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/session"
	"github.com/cema-health/program-manager/internal/timezone"
	"github.com/cema-health/program-manager/internal/token"
)

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUsers) Create(ctx context.Context, u *models.User, profile *models.Client) error {
	return m.Called(ctx, u, profile).Error(0)
}

func (m *MockUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUsers) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUsers) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUsers) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type memorySessions struct {
	byID map[string]session.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{byID: map[string]session.Session{}}
}

func (s *memorySessions) Create(_ context.Context, p authz.Principal, now time.Time) (session.Session, error) {
	sess := session.Session{ID: "sess-1", UserID: p.UserID, Role: p.Role.String(), CreatedAt: now}
	s.byID[sess.ID] = sess
	return sess, nil
}

func (s *memorySessions) Get(_ context.Context, id string) (session.Session, error) {
	sess, ok := s.byID[id]
	if !ok {
		return session.Session{}, session.ErrNotFound
	}
	return sess, nil
}

func (s *memorySessions) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	return nil
}

func (s *memorySessions) DeleteForUser(_ context.Context, userID uint) error {
	for id, sess := range s.byID {
		if sess.UserID == userID {
			delete(s.byID, id)
		}
	}
	return nil
}

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)
	clock := timezone.FixedClock{T: now}
	tokens := token.NewIssuer("secret", time.Hour)

	t.Run("success", func(t *testing.T) {
		users := &MockUsers{}
		sessions := newMemorySessions()
		uc := NewLogin(users, sessions, tokens, audit.Nop{}, clock, logging.Discard())

		users.On("GetByUsername", ctx, "drkim").
			Return(&models.User{ID: 3, Username: "drkim", Role: "doctor", PasswordHash: hashed(t, "secret1")}, nil)
		users.On("TouchLastLogin", ctx, uint(3), now).Return(nil)

		res, err := uc.Execute(ctx, LoginInput{Username: " drkim ", Password: "secret1"})
		require.NoError(t, err)

		assert.Equal(t, "sess-1", res.SessionID)
		assert.Equal(t, "drkim", res.User.Username)
		require.NotNil(t, res.User.LastLogin)

		id, err := tokens.Parse(res.Token)
		require.NoError(t, err)
		assert.Equal(t, authz.Principal{UserID: 3, Role: authz.RoleDoctor}, id.Principal)
		assert.Equal(t, "sess-1", id.SessionID)

		_, err = sessions.Get(ctx, "sess-1")
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := &MockUsers{}
		uc := NewLogin(users, newMemorySessions(), tokens, audit.Nop{}, clock, logging.Discard())

		users.On("GetByUsername", ctx, "drkim").
			Return(&models.User{ID: 3, Username: "drkim", Role: "doctor", PasswordHash: hashed(t, "secret1")}, nil)

		_, err := uc.Execute(ctx, LoginInput{Username: "drkim", Password: "nope"})
		assert.True(t, httperr.IsBusiness(err, "invalid_credentials"))
		users.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		users := &MockUsers{}
		uc := NewLogin(users, newMemorySessions(), tokens, audit.Nop{}, clock, logging.Discard())

		users.On("GetByUsername", ctx, "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, err := uc.Execute(ctx, LoginInput{Username: "ghost", Password: "whatever"})
		assert.True(t, httperr.IsKind(err, httperr.KindUnauthenticated))
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewLogin(&MockUsers{}, newMemorySessions(), tokens, audit.Nop{}, clock, logging.Discard())
		_, err := uc.Execute(ctx, LoginInput{Username: "drkim"})
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	sessions := newMemorySessions()
	_, err := sessions.Create(ctx, authz.Principal{UserID: 1, Role: authz.RoleAdmin}, time.Now())
	require.NoError(t, err)

	uc := NewLogout(sessions)
	require.NoError(t, uc.Execute(ctx, "sess-1"))
	require.NoError(t, uc.Execute(ctx, ""))

	_, err = sessions.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
