package program

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cema-health/program-manager/internal/httperr"
)

func TestValidate(t *testing.T) {
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   Input
		code string
	}{
		{"valid future", Input{Name: "TB Control", StartDate: today.AddDate(0, 0, 7), Duration: 12}, ""},
		{"valid today", Input{Name: "TB Control", StartDate: today, Duration: 1}, ""},
		{"past start", Input{Name: "TB Control", StartDate: today.AddDate(0, 0, -1), Duration: 12}, "start_date_in_past"},
		{"zero duration", Input{Name: "TB Control", StartDate: today, Duration: 0}, "invalid_duration"},
		{"blank name", Input{Name: "  ", StartDate: today, Duration: 4}, "program_name_required"},
		{"long name", Input{Name: strings.Repeat("a", 101), StartDate: today, Duration: 4}, "program_name_too_long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in, today)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, httperr.IsBusiness(err, tt.code), "got %v", err)
			assert.True(t, httperr.IsKind(err, httperr.KindValidation))
		})
	}
}
