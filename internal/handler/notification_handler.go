package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/common"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/internal/service"
)

// NotificationHandler handles notification requests
type NotificationHandler struct {
	service *service.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetUnreadCount handles GET /api/v1/notifications/unread-count
func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	summary, err := h.service.GetUnreadCount(middleware.GetUserEmail(c))
	if err != nil {
		respondError(c, err, "Unread count lookup failed")
		return
	}

	common.SuccessResponse(c, summary, nil)
}

// GetList handles GET /api/v1/notifications
func (h *NotificationHandler) GetList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	unreadOnly := c.Query("unread") == "true"

	result, err := h.service.GetList(middleware.GetUserEmail(c), unreadOnly, page, limit)
	if err != nil {
		respondError(c, err, "Notification listing failed")
		return
	}

	common.SuccessResponse(c, result, nil)
}

// MarkAsRead handles POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.service.MarkAsRead(middleware.GetUserEmail(c), id); err != nil {
		respondError(c, err, "Marking notification failed")
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// MarkAllAsRead handles POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.service.MarkAllAsRead(middleware.GetUserEmail(c)); err != nil {
		respondError(c, err, "Marking notifications failed")
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}

// Delete handles DELETE /api/v1/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid notification ID", nil)
		return
	}

	if err := h.service.Delete(middleware.GetUserEmail(c), id); err != nil {
		respondError(c, err, "Notification deletion failed")
		return
	}

	common.SuccessResponse(c, gin.H{"success": true}, nil)
}
