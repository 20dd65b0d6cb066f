package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/models"
)

func TestNewProfile_SplitsEnrollmentsAndDefaultsDoctor(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	doctor := &models.User{Username: "dr.kamau"}

	c := models.Client{
		ID:          3,
		FullName:    "Jane Wanjiru",
		DateOfBirth: time.Date(1990, 11, 30, 0, 0, 0, 0, time.UTC),
		Enrollments: []models.Enrollment{
			{ID: 1, StatusID: status.Enrolled.Uint(), Program: models.Program{Name: "TB Control"}, Status: models.Status{Name: "Enrolled"}},
			{ID: 2, StatusID: status.Dropped.Uint(), Program: models.Program{Name: "HIV Care"}},
			{ID: 3, StatusID: status.Completed.Uint(), Program: models.Program{Name: "Nutrition"}},
		},
		Appointments: []models.Appointment{
			{ID: 10, StatusID: status.Pending.Uint(), Doctor: doctor},
			{ID: 11, StatusID: status.Cancelled.Uint()},
		},
	}

	p := NewProfile(c, now)

	assert.Equal(t, 35, p.Client.Age)
	require.Len(t, p.ActiveEnrollments, 1)
	assert.Equal(t, "TB Control", p.ActiveEnrollments[0].ProgramName)
	require.Len(t, p.DroppedEnrollments, 1)
	assert.Equal(t, "Dropped", p.DroppedEnrollments[0].Status)

	require.Len(t, p.Appointments, 2)
	assert.Equal(t, "dr.kamau", p.Appointments[0].Doctor)
	assert.Equal(t, "Pending", p.Appointments[0].Status)
	assert.Equal(t, "N/A", p.Appointments[1].Doctor)
}

func TestNewClientSummary(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s := NewClientSummary(models.Client{ID: 1, FullName: "A", DateOfBirth: time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC)}, now)
	assert.Equal(t, 30, s.Age)
	assert.Nil(t, s.RegisteredBy)
	assert.NotNil(t, s.Enrollments)

	s = NewClientSummary(models.Client{RegisteredBy: &models.User{Username: "admin"}}, now)
	require.NotNil(t, s.RegisteredBy)
	assert.Equal(t, "admin", *s.RegisteredBy)
}

func TestNewEnrollmentListItems(t *testing.T) {
	items := NewEnrollmentListItems([]models.Enrollment{{
		EnrollmentDate: time.Date(2025, 3, 10, 15, 4, 0, 0, time.UTC),
		StatusID:       status.Enrolled.Uint(),
		Program:        models.Program{Name: "TB Control"},
	}})

	require.Len(t, items, 1)
	assert.Equal(t, EnrollmentListItem{ProgramName: "TB Control", Date: "2025-03-10", Status: "Enrolled"}, items[0])
}
