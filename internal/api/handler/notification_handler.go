package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ChristianMThomas/Timenest/internal/service"
	"github.com/ChristianMThomas/Timenest/pkg/response"
)

// NotificationHandler serves in-app violation notifications.
type NotificationHandler struct {
	notifSvc service.NotificationService
}

// NewNotificationHandler builds the NotificationHandler.
func NewNotificationHandler(notifSvc service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc}
}

// ListUnread returns the caller's unread notifications.
// GET /api/v1/notifications
func (h *NotificationHandler) ListUnread(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.notifSvc.ListUnread(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// CountUnread returns the caller's unread notification count.
// GET /api/v1/notifications/count
func (h *NotificationHandler) CountUnread(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	count, err := h.notifSvc.CountUnread(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"count": count})
}

// MarkRead marks one notification read.
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.notifSvc.MarkRead(c.Request.Context(), c.Param("id"), userID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotificationNotFound):
			response.NotFound(c, 15001, "notification not found")
		case errors.Is(err, service.ErrNotificationForbidden):
			response.Forbidden(c, 15002, "notification belongs to another user")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
