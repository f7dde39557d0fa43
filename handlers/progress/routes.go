package progress

import (
	"api/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all routes related to progress and rankings
// r: the RouterGroup to which routes are added
func RegisterRoutes(r *gin.RouterGroup) {

	progress := r.Group("/progress")
	{
		progress.GET("/leaderboard", GetLeaderboard)
	}

	protected := r.Group("/progress")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/user-stats", GetUserStats)
		protected.GET("/bookmarks", GetBookmarks)
		protected.POST("/bookmarks/:challenge_id", ToggleBookmark)
		protected.PUT("/notes/:challenge_id", UpdateNotes)
		protected.GET("/achievements", GetAchievements)
	}
}
