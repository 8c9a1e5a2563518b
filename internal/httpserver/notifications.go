package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"marketplace-api/internal/domain"
	notificationrepo "marketplace-api/internal/repository/notification"
)

// notificationLimit caps a single listing; unread rows sort first.
const notificationLimit = 50

func listNotificationsHandler(repo notificationrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		notifications, err := repo.ListByUser(c.Request.Context(), u.ID, notificationLimit)
		if err != nil {
			writeError(c, err)
			return
		}
		if notifications == nil {
			notifications = []domain.Notification{}
		}
		c.JSON(http.StatusOK, notifications)
	}
}

func readNotificationHandler(repo notificationrepo.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if err := repo.MarkRead(c.Request.Context(), u.ID, c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
