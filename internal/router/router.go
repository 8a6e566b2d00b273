package router

import (
	"time"

	"github.com/Yash-g2310/l-and-t-prototype/internal/handlers"
	"github.com/Yash-g2310/l-and-t-prototype/internal/middleware"
	"github.com/Yash-g2310/l-and-t-prototype/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/chat/:room_id", middleware.AuthMiddleware(), handlers.ChatWebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateUser)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.PATCH("/:project_id", handlers.UpdateProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Worker assignments
			projects.POST("/:project_id/workers", handlers.AddWorker)
			projects.GET("/:project_id/workers", handlers.ListWorkers)
			projects.DELETE("/:project_id/workers/:worker_id", handlers.RemoveWorker)

			// Updates
			projects.POST("/:project_id/updates", handlers.CreateProjectUpdate)
			projects.GET("/:project_id/updates", handlers.ListProjectUpdates)

			// Suppliers
			projects.POST("/:project_id/suppliers", handlers.CreateSupplier)
			projects.GET("/:project_id/suppliers", handlers.ListSuppliers)
			projects.PUT("/:project_id/suppliers/:supplier_id", handlers.UpdateSupplier)
			projects.DELETE("/:project_id/suppliers/:supplier_id", handlers.DeleteSupplier)

			// Timeline
			projects.POST("/:project_id/timeline", handlers.CreateTimelineEvent)
			projects.GET("/:project_id/timeline", handlers.ListTimelineEvents)
			projects.PUT("/:project_id/timeline/:event_id", handlers.UpdateTimelineEvent)
			projects.DELETE("/:project_id/timeline/:event_id", handlers.DeleteTimelineEvent)

			// Risks
			projects.POST("/:project_id/risks", handlers.CreateRisk)
			projects.GET("/:project_id/risks", handlers.ListRisks)
			projects.PUT("/:project_id/risks/:risk_id", handlers.UpdateRisk)
			projects.DELETE("/:project_id/risks/:risk_id", handlers.DeleteRisk)
		}

		chat := api.Group("/chat-rooms", middleware.AuthMiddleware())
		{
			chat.GET("", handlers.ListChatRooms)
			chat.GET("/:room_id/messages", handlers.ListMessages)
			chat.POST("/:room_id/messages", handlers.PostMessage)
		}
	}

	return r
}
