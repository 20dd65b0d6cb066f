package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/models"
)

func TestCanDelete(t *testing.T) {
	admin := &models.User{ID: 1, Role: "admin"}
	doctor := &models.User{ID: 2, Role: "doctor"}

	assert.True(t, httperr.IsBusiness(CanDelete(admin, 1), "last_admin"))
	assert.NoError(t, CanDelete(admin, 2))
	assert.NoError(t, CanDelete(doctor, 1))
	assert.NoError(t, CanDelete(doctor, 0))
}
