package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/models"
	ucAppointment "github.com/cema-health/program-manager/internal/usecase/appointment"
)

type AppointmentUseCases struct {
	Schedule interface {
		Execute(ctx context.Context, p authz.Principal, in ucAppointment.ScheduleInput) (*models.Appointment, error)
	}
	Confirm interface {
		Execute(ctx context.Context, p authz.Principal, appointmentID uint) (*models.Appointment, error)
	}
	Cancel interface {
		Execute(ctx context.Context, p authz.Principal, appointmentID uint, reason string) (*models.Appointment, error)
	}
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc  AppointmentUseCases
	loc *time.Location
	log *slog.Logger
}

func NewAppointmentHandler(uc AppointmentUseCases, loc *time.Location, log *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, loc: loc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID  uint   `json:"client_id" binding:"required"`
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	ProgramID uint   `json:"program_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Notes     string `json:"notes"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	date, err := parseDate(req.Date, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "date must be YYYY-MM-DD.")
		return
	}

	ap, err := h.uc.Schedule.Execute(c.Request.Context(), middleware.PrincipalFrom(c), ucAppointment.ScheduleInput{
		ClientID:  req.ClientID,
		DoctorID:  req.DoctorID,
		ProgramID: req.ProgramID,
		Date:      date,
		Notes:     req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, ap)
}

// ======================================================
// STATUS CHANGES
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Confirm.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, "Appointment confirmed", ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// body is optional
	var req CancelAppointmentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidRequest(c, err)
			return
		}
	}

	ap, err := h.uc.Cancel.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, req.Reason)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, "Appointment cancelled", ap)
}
