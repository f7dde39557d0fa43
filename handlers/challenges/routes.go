package challenges

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to challenges
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {

	challenges := r.Group("/challenges")
	{
		challenges.GET("/categories", GetCategories)
		challenges.GET("", GetChallenges)
		challenges.GET("/:identifier", middleware.OptionalAuthMiddleware(), GetChallenge)
		challenges.GET("/:identifier/recent-solves", GetRecentSolves)
		challenges.GET("/:identifier/leaderboard", GetChallengeLeaderboard)
	}

	protected := r.Group("/challenges")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/my-progress", GetMyProgress)
		protected.POST("/:identifier/start", StartChallenge)
		protected.POST("/:identifier/submit", SubmitAnswer)
		protected.POST("/:identifier/hint", GetHint)
	}
}
