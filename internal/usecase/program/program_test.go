package program

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
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *models.Program) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = 11
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id uint) (*models.Program, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Program), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, p *models.Program) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]models.Program, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Program), args.Error(1)
}

var (
	admin  = authz.Principal{UserID: 1, Role: authz.RoleAdmin}
	doctor = authz.Principal{UserID: 2, Role: authz.RoleDoctor}
	client = authz.Principal{UserID: 3, Role: authz.RoleClient}

	now   = time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	clock = timezone.FixedClock{T: now}
)

func newAuthorizer(t *testing.T) *authz.Authorizer {
	t.Helper()
	az, err := authz.NewAuthorizer()
	require.NoError(t, err)
	return az
}

func TestAddProgram(t *testing.T) {
	ctx := context.Background()
	in := ProgramInput{Name: " TB Control ", StartDate: today.AddDate(0, 0, 7), Duration: 12}

	t.Run("created", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewAddProgram(repo, newAuthorizer(t), audit.Nop{}, clock)

		repo.On("ExistsByName", ctx, "TB Control").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(p *models.Program) bool {
			return p.Name == "TB Control" && p.Duration == 12
		})).Return(nil)

		p, err := uc.Execute(ctx, doctor, in)
		require.NoError(t, err)
		assert.Equal(t, uint(11), p.ID)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewAddProgram(repo, newAuthorizer(t), audit.Nop{}, clock)
		repo.On("ExistsByName", ctx, "TB Control").Return(true, nil)

		_, err := uc.Execute(ctx, admin, in)
		assert.True(t, httperr.IsKind(err, httperr.KindConflict))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("start date in the past", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewAddProgram(repo, newAuthorizer(t), audit.Nop{}, clock)

		past := in
		past.StartDate = today.AddDate(0, 0, -1)
		_, err := uc.Execute(ctx, admin, past)
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
	})

	t.Run("client role denied", func(t *testing.T) {
		uc := NewAddProgram(&MockRepository{}, newAuthorizer(t), audit.Nop{}, clock)
		_, err := uc.Execute(ctx, client, in)
		assert.True(t, httperr.IsKind(err, httperr.KindPermissionDenied))
	})
}

func TestEditProgram(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{}
	uc := NewEditProgram(repo, newAuthorizer(t), audit.Nop{}, clock)

	repo.On("GetByID", ctx, uint(4)).Return(&models.Program{ID: 4, Name: "Old", StartDate: today, Duration: 2}, nil)
	repo.On("GetByID", ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	p, err := uc.Execute(ctx, doctor, 4, ProgramInput{Name: "New", StartDate: today, Duration: 6})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, 6, p.Duration)
	repo.AssertNotCalled(t, "ExistsByName", mock.Anything, mock.Anything)

	_, err = uc.Execute(ctx, doctor, 4, ProgramInput{Name: "New", StartDate: today.AddDate(0, 0, -3), Duration: 6})
	assert.True(t, httperr.IsBusiness(err, "start_date_in_past"))

	_, err = uc.Execute(ctx, doctor, 5, ProgramInput{Name: "New", StartDate: today, Duration: 6})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestDeleteProgram(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{}
	uc := NewDeleteProgram(repo, newAuthorizer(t), audit.Nop{})

	repo.On("Delete", ctx, uint(4)).Return(true, nil)
	repo.On("Delete", ctx, uint(5)).Return(false, nil)

	assert.NoError(t, uc.Execute(ctx, doctor, 4))
	assert.True(t, httperr.IsKind(uc.Execute(ctx, doctor, 5), httperr.KindNotFound))
	assert.True(t, httperr.IsKind(uc.Execute(ctx, client, 4), httperr.KindPermissionDenied))
}

func TestListPrograms(t *testing.T) {
	ctx := context.Background()

	repo := &MockRepository{}
	uc := NewListPrograms(repo, newAuthorizer(t))
	repo.On("List", ctx).Return([]models.Program{{ID: 1, Name: "TB Control"}}, nil)

	items, err := uc.Execute(ctx, client)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TB Control", items[0].Name)
}
