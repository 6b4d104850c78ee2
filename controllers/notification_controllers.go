package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/enterprise-pos/models"
	"github.com/yeremiapane/enterprise-pos/services"
	"github.com/yeremiapane/enterprise-pos/utils"
)

type NotificationController struct {
	App *services.App
}

func NewNotificationController(app *services.App) *NotificationController {
	return &NotificationController{App: app}
}

// GetAllNotifications lists notifications newest first. ?unread=true hides read ones.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	notifs := nc.App.Notifications.Get()
	if c.Query("unread") == "true" {
		unread := make([]models.Notification, 0, len(notifs))
		for _, n := range notifs {
			if !n.Read {
				unread = append(unread, n)
			}
		}
		notifs = unread
	}
	utils.RespondJSON(c, http.StatusOK, "All notifications", notifs)
}

func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	id := c.Param("notif_id")
	var (
		updated models.Notification
		found   bool
	)
	nc.App.Notifications.Update(c.Request.Context(), func(list []models.Notification) []models.Notification {
		next := append([]models.Notification(nil), list...)
		for i := range next {
			if next[i].ID == id {
				next[i].Read = true
				updated, found = next[i], true
				return next
			}
		}
		return list
	})
	if !found {
		utils.RespondError(c, http.StatusNotFound, ErrNotificationAbsent)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", updated)
}

func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	nc.App.Notifications.Update(c.Request.Context(), func(list []models.Notification) []models.Notification {
		next := append([]models.Notification(nil), list...)
		for i := range next {
			next[i].Read = true
		}
		return next
	})
	utils.RespondJSON(c, http.StatusOK, "All notifications marked as read", nil)
}
