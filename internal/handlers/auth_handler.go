package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/config"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	ucAuth "github.com/cema-health/program-manager/internal/usecase/auth"
)

type loginUseCase interface {
	Execute(ctx context.Context, in ucAuth.LoginInput) (*ucAuth.LoginResult, error)
}

type logoutUseCase interface {
	Execute(ctx context.Context, sessionID string) error
}

type meUseCase interface {
	Execute(ctx context.Context, p authz.Principal) (*dto.UserView, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuthHandler struct {
	login  loginUseCase
	logout logoutUseCase
	me     meUseCase
	cfg    config.AuthConfig
	log    *slog.Logger
}

func NewAuthHandler(
	login loginUseCase,
	logout logoutUseCase,
	me meUseCase,
	cfg config.AuthConfig,
	log *slog.Logger,
) *AuthHandler {
	return &AuthHandler{login: login, logout: logout, me: me, cfg: cfg, log: log}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), ucAuth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	maxAge := int((time.Duration(h.cfg.SessionTTLMinutes) * time.Minute).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, res.SessionID, maxAge, "/", "", h.cfg.CookieSecure, true)

	httpresp.OK(c, gin.H{
		"user":       res.User,
		"token":      res.Token,
		"expires_at": res.ExpiresAt,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logout.Execute(c.Request.Context(), middleware.SessionIDFrom(c)); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	httpresp.Success(c, "Logged out", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.me.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}
