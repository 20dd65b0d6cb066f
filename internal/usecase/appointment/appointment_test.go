package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/logging"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetClient(ctx context.Context, id uint) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRepository) GetDoctor(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockRepository) GetProgram(ctx context.Context, id uint) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *MockRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	if args.Error(0) == nil {
		ap.ID = 31
	}
	return args.Error(0)
}

func (m *MockRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment, fromStatus uint) (bool, error) {
	args := m.Called(ctx, ap, fromStatus)
	return args.Bool(0), args.Error(1)
}

type MockNotifications struct {
	mock.Mock
}

func (m *MockNotifications) Create(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotifications) ClientAccountExists(ctx context.Context, clientID uint) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotifications) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotifications) GetForUser(ctx context.Context, id, userID uint) (*models.Notification, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotifications) UpdateStatus(ctx context.Context, id uint, statusID uint) error {
	return m.Called(ctx, id, statusID).Error(0)
}

var (
	doctor = authz.Principal{UserID: 2, Role: authz.RoleDoctor}
	client = authz.Principal{UserID: 9, Role: authz.RoleClient}
	today  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	clock  = timezone.FixedClock{T: today.Add(9 * time.Hour)}
)

func newAuthorizer(t *testing.T) *authz.Authorizer {
	t.Helper()
	az, err := authz.NewAuthorizer()
	require.NoError(t, err)
	return az
}

func TestScheduleAppointment(t *testing.T) {
	ctx := context.Background()
	in := ScheduleInput{ClientID: 9, DoctorID: 2, ProgramID: 1, Date: today.AddDate(0, 0, 4), Notes: " first visit "}

	t.Run("pending and notified", func(t *testing.T) {
		repo := &MockRepository{}
		notify := &MockNotifications{}
		uc := NewScheduleAppointment(repo, notify, newAuthorizer(t), audit.Nop{}, clock, logging.Discard())

		repo.On("GetClient", ctx, uint(9)).Return(&models.Client{ID: 9}, nil)
		repo.On("GetDoctor", ctx, uint(2)).Return(&models.User{ID: 2}, nil)
		repo.On("GetProgram", ctx, uint(1)).Return(&models.Program{ID: 1, Name: "TB Control"}, nil)
		repo.On("CreateAppointment", ctx, mock.Anything).Return(nil)
		notify.On("ClientAccountExists", ctx, uint(9)).Return(true, nil)
		notify.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
			return n.UserID == 9 && n.Message == "An appointment for TB Control has been scheduled on 2025-03-14."
		})).Return(nil)

		ap, err := uc.Execute(ctx, doctor, in)
		require.NoError(t, err)
		assert.Equal(t, status.Pending.Uint(), ap.StatusID)
		assert.Equal(t, "first visit", ap.Notes)
		notify.AssertExpectations(t)
	})

	t.Run("missing doctor", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewScheduleAppointment(repo, &MockNotifications{}, newAuthorizer(t), audit.Nop{}, clock, logging.Discard())

		repo.On("GetClient", ctx, uint(9)).Return(&models.Client{ID: 9}, nil)
		repo.On("GetDoctor", ctx, uint(2)).Return(nil, gorm.ErrRecordNotFound)

		_, err := uc.Execute(ctx, doctor, in)
		assert.True(t, httperr.IsBusiness(err, "doctor_not_found"))
	})

	t.Run("past date", func(t *testing.T) {
		uc := NewScheduleAppointment(&MockRepository{}, &MockNotifications{}, newAuthorizer(t), audit.Nop{}, clock, logging.Discard())
		past := in
		past.Date = today.AddDate(0, 0, -1)

		_, err := uc.Execute(ctx, doctor, past)
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})

	t.Run("client role denied", func(t *testing.T) {
		uc := NewScheduleAppointment(&MockRepository{}, &MockNotifications{}, newAuthorizer(t), audit.Nop{}, clock, logging.Discard())
		_, err := uc.Execute(ctx, client, in)
		assert.True(t, httperr.IsKind(err, httperr.KindPermissionDenied))
	})
}

func TestConfirmAndCancel(t *testing.T) {
	ctx := context.Background()
	az := newAuthorizer(t)

	repo := &MockRepository{}
	confirm := NewConfirmAppointment(repo, az, audit.Nop{})
	cancel := NewCancelAppointment(repo, az, audit.Nop{})

	repo.On("GetAppointment", ctx, uint(5)).
		Return(&models.Appointment{ID: 5, StatusID: status.Pending.Uint()}, nil).Once()
	repo.On("UpdateAppointment", ctx, mock.Anything, status.Pending.Uint()).Return(true, nil).Once()

	ap, err := confirm.Execute(ctx, doctor, 5)
	require.NoError(t, err)
	assert.Equal(t, status.Confirmed.Uint(), ap.StatusID)

	repo.On("GetAppointment", ctx, uint(5)).
		Return(&models.Appointment{ID: 5, StatusID: status.Confirmed.Uint()}, nil).Once()
	repo.On("UpdateAppointment", ctx, mock.Anything, status.Confirmed.Uint()).Return(true, nil).Once()

	ap, err = cancel.Execute(ctx, doctor, 5, "rescheduled")
	require.NoError(t, err)
	assert.Equal(t, status.Cancelled.Uint(), ap.StatusID)

	repo.On("GetAppointment", ctx, uint(5)).
		Return(&models.Appointment{ID: 5, StatusID: status.Cancelled.Uint()}, nil).Once()

	_, err = confirm.Execute(ctx, doctor, 5)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))

	repo.On("GetAppointment", ctx, uint(6)).Return(nil, gorm.ErrRecordNotFound)
	_, err = cancel.Execute(ctx, doctor, 6, "")
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}
