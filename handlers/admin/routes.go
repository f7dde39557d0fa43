package admin

import (
	"api/config"
	"api/middleware"
	"api/security"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to administration
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {
	guard := security.NewSetupGuard(config.DefaultSetupSecurityConfig)

	setup := r.Group("/admin/setup")
	{
		setup.GET("/check", guard.CheckMiddleware(), CheckSetup)
		setup.GET("/csrf-token", guard.CheckMiddleware(), GetCSRFToken(guard))
		setup.POST("", guard.Middleware(), SetupAdmin)
	}

	protected := r.Group("/admin")
	protected.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		protected.GET("/dashboard", GetDashboard)

		protected.POST("/categories", CreateCategory)
		protected.PUT("/categories/:category_id", UpdateCategory)
		protected.DELETE("/categories/:category_id", DeleteCategory)

		protected.GET("/challenges", GetAllChallenges)
		protected.POST("/challenges", CreateChallenge)
		protected.PUT("/challenges/:challenge_id", UpdateChallenge)
		protected.DELETE("/challenges/:challenge_id", DeleteChallenge)

		protected.GET("/users", GetAllUsers)
		protected.POST("/users", CreateUser)
		protected.POST("/users/:user_id/toggle-active", ToggleUserActive)
		protected.POST("/users/:user_id/toggle-admin", ToggleUserAdmin)
	}
}
