package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/models"
	ucEnrollment "github.com/cema-health/program-manager/internal/usecase/enrollment"
)

type enrollmentTransition interface {
	Execute(ctx context.Context, p authz.Principal, enrollmentID uint) (*models.Enrollment, error)
}

type EnrollmentUseCases struct {
	Enroll interface {
		Execute(ctx context.Context, p authz.Principal, in ucEnrollment.EnrollInput) (*ucEnrollment.EnrollResult, error)
	}
	List interface {
		Execute(ctx context.Context, p authz.Principal, clientID uint) ([]dto.EnrollmentListItem, error)
	}
	Drop     enrollmentTransition
	Complete enrollmentTransition
}

type EnrollmentHandler struct {
	uc  EnrollmentUseCases
	log *slog.Logger
}

func NewEnrollmentHandler(uc EnrollmentUseCases, log *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{uc: uc, log: log}
}

type EnrollRequest struct {
	ProgramIDs []uint `json:"programIds"`
}

// EnrollResponse carries the conflicting programs when the client is
// already enrolled.
type EnrollResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
	Conflicts any    `json:"conflicts,omitempty"`
}

func (h *EnrollmentHandler) ListByClient(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.uc.List.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	_, err := h.uc.Enroll.Execute(c.Request.Context(), middleware.PrincipalFrom(c), ucEnrollment.EnrollInput{
		ClientID:   id,
		ProgramIDs: req.ProgramIDs,
	})
	if err != nil {
		var be httperr.BusinessError
		if errors.As(err, &be) && be.Kind == httperr.KindConflict {
			c.JSON(http.StatusConflict, EnrollResponse{
				Success:   false,
				Message:   be.Message,
				ErrorCode: be.Code,
				Conflicts: be.Details,
			})
			return
		}
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, EnrollResponse{Success: true, Message: "Enrollment successful"})
}

func (h *EnrollmentHandler) Drop(c *gin.Context) {
	h.transition(c, h.uc.Drop, "Enrollment dropped")
}

func (h *EnrollmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.uc.Complete, "Enrollment completed")
}

func (h *EnrollmentHandler) transition(c *gin.Context, uc enrollmentTransition, message string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	e, err := uc.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, message, e)
}
