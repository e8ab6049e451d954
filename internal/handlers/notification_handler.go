package handlers

import (
	"net/http"
	"strconv"

	"github.com/campvista/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationRepo repositories.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notificationRepository: notificationRepo}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(e *echo.Echo, requireLogin echo.MiddlewareFunc) {
	e.GET("/notifications", h.ListNotifications, requireLogin)
	e.GET("/notifications/:id", h.ViewNotification, requireLogin)
}

// ListNotifications lists the logged-in user's notifications, newest first
func (h *NotificationHandler) ListNotifications(c echo.Context) error {
	user := currentUser(c)

	page := parsePage(c.QueryParam("page"))
	limit := parsePositive(c.QueryParam("limit"), 20, 100)

	notifications, total, err := h.notificationRepository.GetByRecipientID(user.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	unread, err := h.notificationRepository.GetUnreadCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
		"unread":        unread,
		"page":          page,
	})
}

// ViewNotification marks the notification read and sends the user to the
// campground it refers to
func (h *NotificationHandler) ViewNotification(c echo.Context) error {
	user := currentUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return redirectWithError(c, "/notifications", "Notification not found")
	}

	notification, err := h.notificationRepository.GetNotificationByID(uint(notificationID))
	if err != nil {
		return redirectWithError(c, "/notifications", "Notification not found")
	}

	if notification.RecipientID != user.ID {
		return redirectWithError(c, "/notifications", "You don't have permission to do that")
	}

	if err := h.notificationRepository.MarkAsRead(notification.ID); err != nil {
		return redirectWithError(c, "/notifications", err.Error())
	}

	return c.Redirect(http.StatusSeeOther, "/campgrounds/"+notification.CampgroundID)
}
