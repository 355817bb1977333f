package routes

import (
	"startup-dashboard-api/controllers"
	"startup-dashboard-api/middleware"
	"startup-dashboard-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			// Authentication
			public.POST("/login", controllers.Login)
			public.POST("/forgot-password", controllers.ForgotPassword)
			public.POST("/reset-password", controllers.ResetPassword)

			// Health check
			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Startup Dashboard API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// User profile
			protected.GET("/profile", controllers.GetProfile)
			protected.PUT("/change-password", controllers.ChangePassword)

			// Startup explorer
			startups := protected.Group("/startups")
			{
				startups.GET("", controllers.GetStartups)
				startups.GET("/filters", controllers.GetStartupFilters)
				startups.GET("/:id", controllers.GetStartup)
				startups.PUT("/:id/rating", controllers.RateStartup)
				startups.POST("/:id/shortlist", controllers.ToggleShortlist)
			}

			// Per-user listings
			my := protected.Group("/my")
			{
				my.GET("/ratings", controllers.GetMyRatings)
				my.GET("/shortlist", controllers.GetMyShortlist)
			}

			// Aggregates
			protected.GET("/leaderboard", controllers.GetLeaderboard)

			// Admin only: master management and exports
			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/startups/import", controllers.AdminImportStartups)
				admin.GET("/startups/status", controllers.GetMasterStatus)
				admin.PUT("/startups/lock", controllers.LockMaster)
				admin.DELETE("/startups/lock", controllers.UnlockMaster)

				admin.GET("/export/ratings", controllers.ExportRatings)
				admin.GET("/export/shortlists", controllers.ExportShortlists)
				admin.GET("/export/startups", controllers.ExportStartups)
			}
		}
	}
}
