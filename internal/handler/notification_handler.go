package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/laxautomacoes/crmLAX-sub001/internal/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/internal/service"
	pkgmiddleware "github.com/laxautomacoes/crmLAX-sub001/pkg/middleware"
	"github.com/laxautomacoes/crmLAX-sub001/pkg/response"
)

// NotificationHandler handles in-app notification HTTP requests
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List handles listing the authenticated profile's notifications
// GET /api/v1/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	profileID, ok := pkgmiddleware.GetProfileID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized(""))
		return
	}

	unreadOnly := c.Query("unread") == "true"

	result, err := h.notificationService.ListByProfile(c.Request.Context(), tenantID, profileID, unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// MarkRead handles marking a notification as read
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		c.JSON(http.StatusNotFound, response.NotFound("Tenant not resolved"))
		return
	}

	if err := h.notificationService.MarkRead(c.Request.Context(), tenantID, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, response.InternalError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"message": "Notification marked as read"}))
}
