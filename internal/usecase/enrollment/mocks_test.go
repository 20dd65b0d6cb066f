package enrollment

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetClient(ctx context.Context, clientID uint) (*models.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRepository) GetProgramsByIDs(ctx context.Context, ids []uint) ([]models.Program, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Program), args.Error(1)
}

func (m *MockRepository) ActiveProgramIDs(ctx context.Context, clientID uint, programIDs []uint) ([]uint, error) {
	args := m.Called(ctx, clientID, programIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockRepository) CreateEnrollments(ctx context.Context, rows []models.Enrollment) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockRepository) GetEnrollment(ctx context.Context, id uint) (*models.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func (m *MockRepository) TransitionStatus(ctx context.Context, id uint, from, to status.ID) (bool, error) {
	args := m.Called(ctx, id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Enrollment, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Enrollment), args.Error(1)
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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotifications) GetForUser(ctx context.Context, id, userID uint) (*models.Notification, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotifications) UpdateStatus(ctx context.Context, id uint, statusID uint) error {
	return m.Called(ctx, id, statusID).Error(0)
}

type recordingAudit struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recordingAudit) Record(_ context.Context, ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
