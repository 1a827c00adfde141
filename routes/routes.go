package routes

import (
	"time-tracker-api/controllers"
	"time-tracker-api/middleware"
	"time-tracker-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Public routes
		public := api.Group("")
		{
			public.POST("/auth/register", controllers.Register)
			public.POST("/auth/login", controllers.Login)

			public.GET("/health", func(c *gin.Context) {
				c.JSON(200, gin.H{
					"status":  "ok",
					"message": "Time Tracker API is running",
				})
			})
		}

		// Protected routes (require authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			// Session
			protected.GET("/auth/me", controllers.GetProfile)
			protected.PATCH("/auth/update-password", controllers.UpdatePassword)
			protected.POST("/auth/logout", controllers.Logout)

			// Weekly time logs
			timelogs := protected.Group("/timelogs")
			{
				timelogs.GET("/me", controllers.GetMyTimeLogs)
				timelogs.GET("/current", controllers.GetCurrentTimeLog)
				timelogs.GET("/:id", controllers.GetTimeLog)
				timelogs.GET("/:id/entries", controllers.GetTimeLogEntries)
				timelogs.POST("/entry", controllers.AddTimeLogEntry)
				timelogs.PATCH("/entry/:id", controllers.UpdateTimeLogEntry)
				timelogs.DELETE("/entry/:id", controllers.DeleteTimeLogEntry)
			}

			// Peer reviews
			reviews := protected.Group("/peer-reviews")
			{
				reviews.GET("/:id", controllers.GetPeerReview)
				reviews.POST("", controllers.CreatePeerReview)
				reviews.DELETE("/:id", controllers.DeletePeerReview)
				reviews.GET("/reviewer/:reviewerId/reviewee/:revieweeId", controllers.GetPeerReviewsBetween)
			}

			// Question catalog (mutations are admin-only)
			questions := protected.Group("/peer-review-questions")
			{
				questions.GET("", controllers.GetPeerReviewQuestions)
				questions.GET("/:id", controllers.GetPeerReviewQuestion)
				questions.POST("", middleware.RequireRole(models.RoleAdmin), controllers.CreatePeerReviewQuestion)
				questions.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), controllers.DeletePeerReviewQuestion)
			}

			// User directory
			users := protected.Group("/users")
			{
				users.GET("", middleware.RequireRole(models.RoleAdmin), controllers.GetAllUsers)
				users.GET("/groups", controllers.GetGroups)
				users.GET("/group/:groupId", controllers.GetUsersByGroup)
				users.GET("/:netId", controllers.GetUser)
				users.PATCH("/:netId/group", middleware.RequireRole(models.RoleAdmin), controllers.UpdateUserGroup)
				users.DELETE("/:netId/group", middleware.RequireRole(models.RoleAdmin), controllers.RemoveUserFromGroup)
				users.POST("/import", middleware.RequireRole(models.RoleAdmin), controllers.ImportUsers)
			}
		}
	}
}
