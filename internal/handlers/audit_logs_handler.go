package handlers

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/audit"
	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/models"
)

type auditLister interface {
	List(ctx context.Context, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs  auditLister
	authz *authz.Authorizer
	loc   *time.Location
	log   *slog.Logger
}

func NewAuditLogsHandler(logs auditLister, az *authz.Authorizer, loc *time.Location, log *slog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, authz: az, loc: loc, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	if err := h.authz.Require(middleware.PrincipalFrom(c), authz.ResourceAuditLog, authz.ActionList); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))
	if limit <= 0 || limit > audit.MaxLimit {
		limit = audit.DefaultLimit
	}

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	// --------------------------------------------------
	// Optional date range, "to" inclusive
	// --------------------------------------------------
	if from, err := parseDate(c.Query("from"), h.loc); err == nil {
		f.From = &from
	}
	if to, err := parseDate(c.Query("to"), h.loc); err == nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "audit list failed", slog.Any("error", err))
		httperr.Respond(c, h.log, httperr.Internal("audit_list_failed", "Could not list audit logs."))
		return
	}

	httpresp.OK(c, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
