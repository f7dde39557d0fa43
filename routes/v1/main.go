package v1

import (
	"api/handlers/admin"
	"api/handlers/auth"
	"api/handlers/challenges"
	"api/handlers/files"
	"api/handlers/progress"
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// Register the endpoints for the v1 API
func Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	// Add metrics middleware to all routes
	v1.Use(middleware.MetricsMiddleware())

	rateLimiter := middleware.NewRateLimiter(10000, 1500)
	v1.Use(middleware.RateLimiterMiddleware(rateLimiter))

	RegisterPingRoutes(v1)
	RegisterSupportRoutes(v1)
	auth.RegisterRoutes(v1)
	challenges.RegisterRoutes(v1)
	progress.RegisterRoutes(v1)
	admin.RegisterRoutes(v1)
	files.RegisterRoutes(v1)

	// Register metrics endpoint
	RegisterMetricsRoutes(v1)
}
