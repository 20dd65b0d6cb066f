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
	ucClient "github.com/cema-health/program-manager/internal/usecase/client"
)

type ClientUseCases struct {
	Register interface {
		Execute(ctx context.Context, p authz.Principal, in ucClient.RegisterClientInput) (*models.Client, error)
	}
	Search interface {
		Execute(ctx context.Context, p authz.Principal, in ucClient.SearchInput) ([]dto.ClientSummary, error)
	}
	QuickSearch interface {
		Execute(ctx context.Context, p authz.Principal, q string) ([]dto.QuickSearchItem, error)
	}
	Profile interface {
		Execute(ctx context.Context, p authz.Principal, clientID uint) (*dto.Profile, error)
	}
}

type ClientHandler struct {
	uc  ClientUseCases
	loc *time.Location
	log *slog.Logger
}

func NewClientHandler(uc ClientUseCases, loc *time.Location, log *slog.Logger) *ClientHandler {
	return &ClientHandler{uc: uc, loc: loc, log: log}
}

type RegisterClientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth" binding:"required"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

func (h *ClientHandler) Register(c *gin.Context) {
	var req RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	dob, err := parseDate(req.DateOfBirth, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD.")
		return
	}

	client, err := h.uc.Register.Execute(c.Request.Context(), middleware.PrincipalFrom(c), ucClient.RegisterClientInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Email:       req.Email,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, client)
}

// QuickSearch backs the type-ahead: GET /api/clients/search?q=
func (h *ClientHandler) QuickSearch(c *gin.Context) {
	out, err := h.uc.QuickSearch.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Query("q"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

// Search: GET /api/search-clients?q=&program=&age=
func (h *ClientHandler) Search(c *gin.Context) {
	out, err := h.uc.Search.Execute(c.Request.Context(), middleware.PrincipalFrom(c), ucClient.SearchInput{
		Name:    c.Query("q"),
		Program: c.Query("program"),
		Age:     c.Query("age"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"clients": out})
}

func (h *ClientHandler) Profile(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.uc.Profile.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}
