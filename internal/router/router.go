package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/medrelay-dev/medrelay/internal/handlers"
	"github.com/medrelay-dev/medrelay/internal/middleware"
	"github.com/medrelay-dev/medrelay/internal/services"
	"github.com/medrelay-dev/medrelay/internal/types"
)

func NewRouter(service *services.NotificationService) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handler := handlers.NewNotificationHandler(service)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Sends arrive through the notification queue, not HTTP; the
		// HTTP surface is read and delete only.
		notifications := api.Group("/notifications", middleware.AuthMiddleware(service))
		{
			notifications.GET("/chat", handler.ListChatNotifications)
			notifications.GET("/chat/:id", handler.GetChatNotification)
			notifications.DELETE("/chat/:id", handler.DeleteChatNotification)
			notifications.DELETE("/chat", handler.DeleteAllChatNotifications)

			notifications.GET("/consent-requests", handler.ListConsentRequestNotifications)
			notifications.GET("/consent-requests/:id", handler.GetConsentRequestNotification)
			notifications.DELETE("/consent-requests/:id", handler.DeleteConsentRequestNotification)
			notifications.DELETE("/consent-requests", handler.DeleteAllConsentRequestNotifications)

			notifications.GET("/one-way", handler.ListOneWayNotifications)
			notifications.GET("/one-way/:id", handler.GetOneWayNotification)
			notifications.DELETE("/one-way/:id", handler.DeleteOneWayNotification)
			notifications.DELETE("/one-way", handler.DeleteAllOneWayNotifications)
		}
	}

	return r
}
