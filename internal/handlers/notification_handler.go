package handlers

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/cema-health/program-manager/internal/authz"
	"github.com/cema-health/program-manager/internal/dto"
	"github.com/cema-health/program-manager/internal/httperr"
	"github.com/cema-health/program-manager/internal/httpresp"
	"github.com/cema-health/program-manager/internal/middleware"
	"github.com/cema-health/program-manager/internal/models"
)

type NotificationUseCases struct {
	List interface {
		Execute(ctx context.Context, p authz.Principal) ([]models.Notification, error)
	}
	MarkRead interface {
		Execute(ctx context.Context, p authz.Principal, id uint) (*models.Notification, error)
	}
}

type NotificationHandler struct {
	uc  NotificationUseCases
	log *slog.Logger
}

func NewNotificationHandler(uc NotificationUseCases, log *slog.Logger) *NotificationHandler {
	return &NotificationHandler{uc: uc, log: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	rows, err := h.uc.List.Execute(c.Request.Context(), middleware.PrincipalFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, dto.NewNotificationViews(rows))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	n, err := h.uc.MarkRead.Execute(c.Request.Context(), middleware.PrincipalFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Success(c, "Notification marked as read", dto.NewNotificationView(*n))
}
