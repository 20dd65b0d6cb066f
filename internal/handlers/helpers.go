package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
)

// pathID reads a positive integer path parameter. On failure it writes a 400
// and returns false.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid "+name+".")
		return 0, false
	}
	return uint(id), true
}

// parseDate accepts YYYY-MM-DD and returns midnight in loc.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, strings.TrimSpace(raw), loc)
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, httperr.HTTPError{
		Code:    "invalid_request",
		Message: "Invalid request body.",
		Details: err.Error(),
	})
}
