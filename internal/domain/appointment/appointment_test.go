package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cema-health/program-manager/internal/domain/status"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    status.ID
		confirm bool
		cancel  bool
	}{
		{"pending", status.Pending, true, true},
		{"confirmed", status.Confirmed, false, true},
		{"cancelled", status.Cancelled, false, false},
		{"enrolled id is not an appointment status", status.Enrolled, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.confirm, CanConfirm(tt.from) == nil)
			assert.Equal(t, tt.cancel, CanCancel(tt.from) == nil)
		})
	}
}

func TestCancel_AppendsReason(t *testing.T) {
	ap := &models.Appointment{StatusID: status.Confirmed.Uint(), Notes: "bring card"}

	require.NoError(t, Cancel(ap, "client travelling"))
	assert.Equal(t, status.Cancelled.Uint(), ap.StatusID)
	assert.Equal(t, "bring card\nCancelled: client travelling", ap.Notes)

	err := Cancel(ap, "")
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}

func TestConfirm(t *testing.T) {
	ap := &models.Appointment{StatusID: status.Pending.Uint()}
	require.NoError(t, Confirm(ap))
	assert.Equal(t, status.Confirmed.Uint(), ap.StatusID)
	assert.Error(t, Confirm(ap))
}

func TestValidateDate(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateDate(today.Add(15*time.Hour), today))
	assert.NoError(t, ValidateDate(today.AddDate(0, 0, 3), today))
	assert.Error(t, ValidateDate(today.AddDate(0, 0, -1), today))
}

func TestDoctorName(t *testing.T) {
	assert.Equal(t, "N/A", DoctorName(models.Appointment{}))
	assert.Equal(t, "dr.otieno", DoctorName(models.Appointment{Doctor: &models.User{Username: "dr.otieno"}}))
}
