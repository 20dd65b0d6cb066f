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
	ucUser "github.com/cema-health/program-manager/internal/usecase/user"
)

type UserUseCases struct {
	Add interface {
		Execute(ctx context.Context, p authz.Principal, in ucUser.AddUserInput) (*models.User, error)
	}
	Delete interface {
		Execute(ctx context.Context, p authz.Principal, id uint) error
	}
	View interface {
		Execute(ctx context.Context, p authz.Principal, id uint) (*dto.UserView, error)
	}
	List interface {
		Execute(ctx context.Context, p authz.Principal) ([]dto.UserView, error)
	}
}

type UserHandler struct {
	uc  UserUseCases
	loc *time.Location
	log *slog.Logger
}

func NewUserHandler(uc UserUseCases, loc *time.Location, log *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, loc: loc, log: log}
}

type ClientProfileRequest struct {
	FullName    string `json:"full_name"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`

	Client *ClientProfileRequest `json:"client"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	in := ucUser.AddUserInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     req.Role,
	}

	if req.Client != nil {
		dob, err := parseDate(req.Client.DateOfBirth, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date_of_birth", "client.date_of_birth must be YYYY-MM-DD.")
			return
		}
		in.Client = &ucUser.ClientProfileInput{
			FullName:    req.Client.FullName,
			DateOfBirth: dob,
			Gender:      req.Client.Gender,
		}
	}

	u, err := h.uc.Add.Execute(c.Request.Context(), middleware.PrincipalFrom(c), in)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, dto.NewUserView(*u))
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.uc.List.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, out)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	out, err := h.uc.View.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, "User deleted", nil)
}
