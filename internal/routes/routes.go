package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/flowhq/approval-backend/internal/handler"
	"github.com/flowhq/approval-backend/internal/middleware"
	"github.com/flowhq/approval-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	contentHandler *handler.ContentHandler,
	reviewHandler *handler.ReviewHandler,
	notificationHandler *handler.NotificationHandler,
	dashboardHandler *handler.DashboardHandler,
	adminHandler *handler.AdminHandler,
	mediaHandler *handler.MediaHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication (no auth required except /me)
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.Me)

	// Everything below requires authentication
	authed := api.Group("", middleware.JWTAuth(jwtManager))

	// Content submission and listing
	content := authed.Group("/content")
	{
		content.POST("", contentHandler.Submit)
		content.GET("", contentHandler.GetList)
		content.GET("/:id", contentHandler.Get)
		content.DELETE("/:id", contentHandler.Delete)
		content.POST("/:id/revision", contentHandler.SubmitRevision)
	}

	// Reviewer queue and decisions
	reviews := authed.Group("/reviews")
	{
		reviews.GET("/queue", reviewHandler.GetQueue)
		reviews.GET("/history", reviewHandler.GetHistory)
		reviews.POST("/:id/decision", reviewHandler.Decide)
	}

	// Notifications
	notifications := authed.Group("/notifications")
	{
		notifications.GET("", notificationHandler.GetList)
		notifications.GET("/unread-count", notificationHandler.GetUnreadCount)
		notifications.POST("/:id/read", notificationHandler.MarkAsRead)
		notifications.POST("/read-all", notificationHandler.MarkAllAsRead)
		notifications.DELETE("/:id", notificationHandler.Delete)
	}

	// Dashboard and analytics
	dashboard := authed.Group("/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.GetStats)
		dashboard.GET("/activity", dashboardHandler.GetActivity)
		dashboard.GET("/sla-breaches", dashboardHandler.GetSLABreaches)
	}
	authed.GET("/analytics", dashboardHandler.GetAnalytics)

	// Attachments
	authed.POST("/media/upload", mediaHandler.Upload)

	// Administration
	admin := authed.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("/workflows", adminHandler.GetWorkflows)
		admin.GET("/workflows/:id", adminHandler.GetWorkflow)
		admin.POST("/workflows", adminHandler.CreateWorkflow)
		admin.PUT("/workflows/:id", adminHandler.UpdateWorkflow)
		admin.DELETE("/workflows/:id", adminHandler.DeleteWorkflow)
		admin.GET("/users", adminHandler.GetUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
	}
}
