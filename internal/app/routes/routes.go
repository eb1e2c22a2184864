package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campushelp/helpdesk/internal/app/controllers"
	"github.com/campushelp/helpdesk/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	chatController *controllers.ChatController,
	studentController *controllers.StudentController,
	adminController *controllers.AdminController,
	authController *controllers.AuthController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Health check for load balancers and uptime monitors
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Chatbot is running!",
		})
	})

	// --- Public student routes ---
	router.POST("/chat", chatController.HandleChat)

	api := router.Group("/api")
	{
		api.GET("/student-data", studentController.GetStudentData)
	}

	// --- Admin routes ---
	admin := router.Group("/secure-admin")
	{
		// Login flow is public by necessity
		admin.POST("/login", authController.Login)
		admin.POST("/verify-otp", authController.VerifyOTP)
		admin.POST("/logout", authController.Logout)

		// Document access requires a valid session token
		data := admin.Group("/data")
		data.Use(authMiddleware.AdminAuth())
		{
			data.GET("", adminController.GetData)
			data.POST("", adminController.SaveData)
		}
	}
}
