package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/keremaydin/acadport/internal/app/controllers"
	"github.com/keremaydin/acadport/internal/app/models"
	"github.com/keremaydin/acadport/internal/app/models/dto"
	"github.com/keremaydin/acadport/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	registryController *controllers.RegistryController,
	authMiddleware *middleware.AuthMiddleware,
	signinLimiter *middleware.RateLimiter,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public registry routes ---
	// The signup form needs these before any session exists.
	v1.GET("/courses", registryController.ListCourses)
	v1.GET("/departments", registryController.ListDepartments)

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/signin", signinLimiter.Limit("signin"), authController.Signin)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/signout", authController.Signout)
		authenticated.GET("/profile", authController.GetProfile)
		authenticated.PUT("/profile", authController.UpdateProfile)

		// Admin-only user management
		adminUsers := authenticated.Group("/admin/users")
		adminUsers.Use(authMiddleware.RoleRequired(string(models.UserTypeAdmin)))
		{
			adminUsers.POST("", userController.CreateUser)
			adminUsers.GET("", userController.ListUsers)
			adminUsers.GET("/:id", userController.GetUser)
			adminUsers.PUT("/:id", userController.UpdateUser)
			adminUsers.DELETE("/:id", userController.DeleteUser)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.APIResponse{
			Data: gin.H{"status": "ok"},
		})
	})

	// Swagger routes are set up in bootstrap.go already
}
