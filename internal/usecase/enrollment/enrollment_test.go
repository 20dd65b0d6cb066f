package enrollment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cema-health/program-manager/internal/authz"
	domain "github.com/cema-health/program-manager/internal/domain/enrollment"
	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/logging"
	"github.com/cema-health/program-manager/internal/models"
	"github.com/cema-health/program-manager/internal/timezone"
)

var (
	doctor = authz.Principal{UserID: 2, Role: authz.RoleDoctor}
	client = authz.Principal{UserID: 9, Role: authz.RoleClient}
	now    = time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC)
	today  = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tbControl = models.Program{ID: 1, Name: "TB Control", StartDate: today.AddDate(0, 0, 7), Duration: 12}
	hivCare   = models.Program{ID: 2, Name: "HIV Care", StartDate: today, Duration: 4}
)

func newEnroll(t *testing.T) (*EnrollClient, *MockRepository, *MockNotifications, *recordingAudit) {
	t.Helper()
	az, err := authz.NewAuthorizer()
	require.NoError(t, err)

	repo := &MockRepository{}
	notify := &MockNotifications{}
	rec := &recordingAudit{}
	uc := NewEnrollClient(repo, notify, az, rec, timezone.FixedClock{T: now}, logging.Discard())
	return uc, repo, notify, rec
}

func TestEnrollClient_CreatesOneRowPerProgram(t *testing.T) {
	uc, repo, notify, rec := newEnroll(t)
	ctx := context.Background()

	repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
	repo.On("GetProgramsByIDs", ctx, []uint{1, 2}).Return([]models.Program{hivCare, tbControl}, nil)
	repo.On("ActiveProgramIDs", ctx, uint(5), []uint{1, 2}).Return([]uint{}, nil)
	repo.On("CreateEnrollments", ctx, mock.MatchedBy(func(rows []models.Enrollment) bool {
		return len(rows) == 2
	})).Return(nil)
	notify.On("ClientAccountExists", ctx, uint(5)).Return(true, nil)
	notify.On("Create", ctx, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 5 && n.StatusID == status.Sent.Uint()
	})).Return(nil)

	res, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1, 2, 1}})
	require.NoError(t, err)
	require.Len(t, res.Enrollments, 2)

	tb := res.Enrollments[0]
	assert.Equal(t, uint(1), tb.ProgramID)
	assert.Equal(t, status.Enrolled.Uint(), tb.StatusID)
	assert.Equal(t, today, tb.StartDate)
	assert.Equal(t, today.AddDate(0, 0, 84), tb.EndDate)
	assert.Equal(t, now, tb.EnrollmentDate)

	hiv := res.Enrollments[1]
	assert.Equal(t, domain.EndDate(hiv.StartDate, 4), hiv.EndDate)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "client_enrolled", rec.events[0].Action)
	repo.AssertExpectations(t)
	notify.AssertExpectations(t)
}

func TestEnrollClient_ConflictWritesNothing(t *testing.T) {
	uc, repo, _, rec := newEnroll(t)
	ctx := context.Background()

	repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
	repo.On("GetProgramsByIDs", ctx, []uint{1, 2}).Return([]models.Program{tbControl, hivCare}, nil)
	repo.On("ActiveProgramIDs", ctx, uint(5), []uint{1, 2}).Return([]uint{1}, nil)

	_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1, 2}})

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindConflict, be.Kind)
	assert.Equal(t, []domain.ConflictingProgram{{ID: 1, Name: "TB Control"}}, be.Details)
	repo.AssertNotCalled(t, "CreateEnrollments", mock.Anything, mock.Anything)
	assert.Empty(t, rec.events)
}

func TestEnrollClient_RaceLostIsNamedConflict(t *testing.T) {
	uc, repo, _, _ := newEnroll(t)
	ctx := context.Background()

	repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
	repo.On("GetProgramsByIDs", ctx, []uint{1}).Return([]models.Program{tbControl}, nil)
	repo.On("ActiveProgramIDs", ctx, uint(5), []uint{1}).Return([]uint{}, nil).Once()
	repo.On("CreateEnrollments", ctx, mock.Anything).
		Return(httperr.Conflict("enrollment_conflict", "duplicate", nil))
	repo.On("ActiveProgramIDs", ctx, uint(5), []uint{1}).Return([]uint{1}, nil).Once()

	_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1}})

	var be httperr.BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, httperr.KindConflict, be.Kind)
	assert.Contains(t, be.Message, "TB Control")
}

func TestEnrollClient_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("empty program list", func(t *testing.T) {
		uc, repo, _, _ := newEnroll(t)
		_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5})
		assert.True(t, httperr.IsKind(err, httperr.KindValidation))
		repo.AssertNotCalled(t, "GetClient", mock.Anything, mock.Anything)
	})

	t.Run("missing client", func(t *testing.T) {
		uc, repo, _, _ := newEnroll(t)
		repo.On("GetClient", ctx, uint(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1}})
		assert.True(t, httperr.IsBusiness(err, "client_not_found"))
	})

	t.Run("missing program", func(t *testing.T) {
		uc, repo, _, _ := newEnroll(t)
		repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
		repo.On("GetProgramsByIDs", ctx, []uint{1, 7}).Return([]models.Program{tbControl}, nil)

		_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1, 7}})
		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, httperr.KindNotFound, be.Kind)
		assert.Equal(t, "Program not found: 7", be.Message)
	})

	t.Run("program id zero is not found", func(t *testing.T) {
		uc, repo, _, _ := newEnroll(t)
		repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
		repo.On("GetProgramsByIDs", ctx, []uint{0}).Return([]models.Program{}, nil)

		_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{0}})
		var be httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, httperr.KindNotFound, be.Kind)
		assert.Equal(t, "Program not found: 0", be.Message)
		repo.AssertNotCalled(t, "CreateEnrollments", mock.Anything, mock.Anything)
	})

	t.Run("client role is denied", func(t *testing.T) {
		uc, _, _, _ := newEnroll(t)
		_, err := uc.Execute(ctx, client, EnrollInput{ClientID: 9, ProgramIDs: []uint{1}})
		assert.True(t, httperr.IsKind(err, httperr.KindPermissionDenied))
	})

	t.Run("notification failure does not fail enrollment", func(t *testing.T) {
		uc, repo, notify, _ := newEnroll(t)
		repo.On("GetClient", ctx, uint(5)).Return(&models.Client{ID: 5}, nil)
		repo.On("GetProgramsByIDs", ctx, []uint{1}).Return([]models.Program{tbControl}, nil)
		repo.On("ActiveProgramIDs", ctx, uint(5), []uint{1}).Return([]uint{}, nil)
		repo.On("CreateEnrollments", ctx, mock.Anything).Return(nil)
		notify.On("ClientAccountExists", ctx, uint(5)).Return(false, errors.New("db down"))

		_, err := uc.Execute(ctx, doctor, EnrollInput{ClientID: 5, ProgramIDs: []uint{1}})
		assert.NoError(t, err)
		notify.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDropEnrollment(t *testing.T) {
	az, err := authz.NewAuthorizer()
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("active becomes dropped then second drop is rejected", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewDropEnrollment(repo, az, &recordingAudit{})

		repo.On("GetEnrollment", ctx, uint(3)).
			Return(&models.Enrollment{ID: 3, StatusID: status.Enrolled.Uint()}, nil).Once()
		repo.On("TransitionStatus", ctx, uint(3), status.Enrolled, status.Dropped).Return(true, nil).Once()

		e, err := uc.Execute(ctx, doctor, 3)
		require.NoError(t, err)
		assert.Equal(t, status.Dropped.Uint(), e.StatusID)

		repo.On("GetEnrollment", ctx, uint(3)).
			Return(&models.Enrollment{ID: 3, StatusID: status.Dropped.Uint()}, nil).Once()

		_, err = uc.Execute(ctx, doctor, 3)
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
		repo.AssertNumberOfCalls(t, "TransitionStatus", 1)
	})

	t.Run("concurrent change is invalid state", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewDropEnrollment(repo, az, &recordingAudit{})

		repo.On("GetEnrollment", ctx, uint(4)).
			Return(&models.Enrollment{ID: 4, StatusID: status.Enrolled.Uint()}, nil)
		repo.On("TransitionStatus", ctx, uint(4), status.Enrolled, status.Dropped).Return(false, nil)

		_, err := uc.Execute(ctx, doctor, 4)
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
	})

	t.Run("missing enrollment", func(t *testing.T) {
		repo := &MockRepository{}
		uc := NewCompleteEnrollment(repo, az, &recordingAudit{})
		repo.On("GetEnrollment", ctx, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		_, err := uc.Execute(ctx, doctor, 99)
		assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
	})
}

func TestListClientEnrollments(t *testing.T) {
	az, err := authz.NewAuthorizer()
	require.NoError(t, err)
	ctx := context.Background()

	repo := &MockRepository{}
	uc := NewListClientEnrollments(repo, az)

	repo.On("GetClient", ctx, uint(9)).Return(&models.Client{ID: 9}, nil)
	repo.On("ListByClient", ctx, uint(9)).Return([]models.Enrollment{{
		EnrollmentDate: now,
		StatusID:       status.Enrolled.Uint(),
		Program:        tbControl,
	}}, nil)

	items, err := uc.Execute(ctx, client, 9)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "TB Control", items[0].ProgramName)
	assert.Equal(t, "2025-03-10", items[0].Date)

	_, err = uc.Execute(ctx, client, 10)
	assert.True(t, httperr.IsKind(err, httperr.KindPermissionDenied))
}
