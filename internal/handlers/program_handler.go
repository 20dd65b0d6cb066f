package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/models"
	ucProgram "github.com/cema-health/program-manager/internal/usecase/program"
)

type ProgramUseCases struct {
	Add interface {
		Execute(ctx context.Context, p authz.Principal, in ucProgram.ProgramInput) (*models.Program, error)
	}
	Edit interface {
		Execute(ctx context.Context, p authz.Principal, id uint, in ucProgram.ProgramInput) (*models.Program, error)
	}
	Delete interface {
		Execute(ctx context.Context, p authz.Principal, id uint) error
	}
	List interface {
		Execute(ctx context.Context, p authz.Principal) ([]dto.ProgramItem, error)
	}
	Get interface {
		Execute(ctx context.Context, p authz.Principal, id uint) (*dto.ProgramDetail, error)
	}
}

// ======================================================
// HANDLER
// ======================================================

type ProgramHandler struct {
	uc  ProgramUseCases
	loc *time.Location
	log *slog.Logger
}

func NewProgramHandler(uc ProgramUseCases, loc *time.Location, log *slog.Logger) *ProgramHandler {
	return &ProgramHandler{uc: uc, loc: loc, log: log}
}

// ======================================================
// REQUESTS
// ======================================================

type ProgramRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   string `json:"start_date" binding:"required"`
	Duration    int    `json:"duration"`
}

func (h *ProgramHandler) bind(c *gin.Context) (ucProgram.ProgramInput, bool) {
	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return ucProgram.ProgramInput{}, false
	}

	start, err := parseDate(req.StartDate, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_date", "start_date must be YYYY-MM-DD.")
		return ucProgram.ProgramInput{}, false
	}

	return ucProgram.ProgramInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		Duration:    req.Duration,
	}, true
}

// ======================================================
// READ
// ======================================================

func (h *ProgramHandler) List(c *gin.Context) {
	out, err := h.uc.List.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ProgramHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.uc.Get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

// ======================================================
// WRITE
// ======================================================

func (h *ProgramHandler) Create(c *gin.Context) {
	in, ok := h.bind(c)
	if !ok {
		return
	}

	prog, err := h.uc.Add.Execute(c.Request.Context(), middleware.PrincipalFrom(c), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.NewProgramDetail(*prog))
}

func (h *ProgramHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	in, ok := h.bind(c)
	if !ok {
		return
	}

	prog, err := h.uc.Edit.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id, in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, dto.NewProgramDetail(*prog))
}

func (h *ProgramHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, "Program deleted", nil)
}
