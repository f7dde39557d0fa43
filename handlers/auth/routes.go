package auth

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to authentication
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {

	auth := r.Group("/auth")
	{
		auth.POST("/register", Register)
		auth.POST("/login", Login)
		auth.POST("/forgot-password", ForgotPassword)
		auth.POST("/reset-password", ResetPassword)
		auth.GET("/validate-reset-token/:token", ValidateResetToken)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/profile", GetProfile)
		protected.PUT("/profile", UpdateProfile)
		protected.POST("/change-password", ChangePassword)
		protected.GET("/validate-token", ValidateToken)
	}
}
