package progress

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeframe values accepted by the leaderboard
const (
	TimeframeAll   = "all"
	TimeframeMonth = "month"
	TimeframeWeek  = "week"
)

// GetLeaderboard returns the global leaderboard, optionally restricted to
// users who scored within the last week or month
// @Summary Global Leaderboard
// @Tags Progress
// @Produce json
// @Param timeframe query string false "all, month or week"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /progress/leaderboard [get]
func GetLeaderboard(c *gin.Context) {
	pagination := utils.GetPagination(c, 50, 100)
	timeframe := c.DefaultQuery("timeframe", TimeframeAll)

	query := database.DB.Model(&models.User{}).
		Where("is_active = ? AND total_score > 0", true)

	var cutoff time.Time
	switch timeframe {
	case TimeframeMonth:
		cutoff = time.Now().UTC().AddDate(0, 0, -30)
	case TimeframeWeek:
		cutoff = time.Now().UTC().AddDate(0, 0, -7)
	default:
		timeframe = TimeframeAll
	}

	if timeframe != TimeframeAll {
		recentScorers := database.DB.Model(&models.Submission{}).
			Select("DISTINCT user_id").
			Where("is_correct = ? AND submitted_at >= ?", true, cutoff)
		query = query.Where("id IN (?)", recentScorers)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	var users []models.User
	if err := query.
		Order("total_score DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&users).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	leaderboard := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		entry := users[i].ToDict(false)
		entry["rank"] = pagination.Offset() + i + 1

		if timeframe != TimeframeAll {
			var recentPoints int64
			database.DB.Model(&models.Submission{}).
				Select("COALESCE(SUM(points_awarded), 0)").
				Where("user_id = ? AND is_correct = ? AND submitted_at >= ?", users[i].ID, true, cutoff).
				Scan(&recentPoints)
			entry["recent_points"] = recentPoints
		}

		leaderboard = append(leaderboard, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": leaderboard,
		"pagination":  pagination.Meta(total),
		"timeframe":   timeframe,
	})
}

// GetUserStats returns detailed statistics for the authenticated user
// @Summary User Statistics
// @Tags Progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /progress/user-stats [get]
func GetUserStats(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var categoryRows []struct {
		CategoryID uint
		Completed  int
		Points     int
	}
	database.DB.Model(&models.Submission{}).
		Select("challenges.category_id AS category_id, COUNT(submissions.id) AS completed, COALESCE(SUM(submissions.points_awarded), 0) AS points").
		Joins("JOIN challenges ON challenges.id = submissions.challenge_id").
		Where("submissions.user_id = ? AND submissions.is_correct = ?", user.ID, true).
		Group("challenges.category_id").
		Scan(&categoryRows)

	var difficultyRows []struct {
		Difficulty string
		Completed  int
		Points     int
	}
	database.DB.Model(&models.Submission{}).
		Select("challenges.difficulty AS difficulty, COUNT(submissions.id) AS completed, COALESCE(SUM(submissions.points_awarded), 0) AS points").
		Joins("JOIN challenges ON challenges.id = submissions.challenge_id").
		Where("submissions.user_id = ? AND submissions.is_correct = ?", user.ID, true).
		Group("challenges.difficulty").
		Scan(&difficultyRows)

	thirtyDaysAgo := time.Now().UTC().AddDate(0, 0, -30)
	var recentSubmissions []models.Submission
	database.DB.Preload("Challenge").
		Where("user_id = ? AND submitted_at >= ?", user.ID, thirtyDaysAgo).
		Order("submitted_at DESC").
		Limit(10).
		Find(&recentSubmissions)

	recentActivity := make([]map[string]interface{}, 0, len(recentSubmissions))
	for i := range recentSubmissions {
		recentActivity = append(recentActivity, recentSubmissions[i].ToDict())
	}

	var avgCompletionTime float64
	database.DB.Model(&models.Submission{}).
		Select("COALESCE(AVG(completion_time), 0)").
		Where("user_id = ? AND is_correct = ? AND completion_time IS NOT NULL", user.ID, true).
		Scan(&avgCompletionTime)

	categoryProgress := make([]map[string]interface{}, 0, len(categoryRows))
	for _, row := range categoryRows {
		categoryProgress = append(categoryProgress, map[string]interface{}{
			"category_id": row.CategoryID,
			"completed":   row.Completed,
			"points":      row.Points,
		})
	}

	difficultyProgress := make([]map[string]interface{}, 0, len(difficultyRows))
	for _, row := range difficultyRows {
		difficultyProgress = append(difficultyProgress, map[string]interface{}{
			"difficulty": row.Difficulty,
			"completed":  row.Completed,
			"points":     row.Points,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"user_stats":          user.ToDict(true),
		"category_progress":   categoryProgress,
		"difficulty_progress": difficultyProgress,
		"recent_activity":     recentActivity,
		"activity_streak":     calculateActivityStreak(user.ID),
		"avg_completion_time": math.Round(avgCompletionTime*100) / 100,
	})
}

// calculateActivityStreak counts consecutive days, ending today or
// yesterday, on which the user submitted at least one answer.
func calculateActivityStreak(userID uint) int {
	var dates []time.Time
	if err := database.DB.Model(&models.Submission{}).
		Distinct().
		Where("user_id = ?", userID).
		Order("DATE(submitted_at) DESC").
		Pluck("DATE(submitted_at)", &dates).Error; err != nil {
		return 0
	}

	if len(dates) == 0 {
		return 0
	}

	streak := 0
	current := time.Now().UTC().Truncate(24 * time.Hour)

	for _, date := range dates {
		day := date.UTC().Truncate(24 * time.Hour)
		if day.Equal(current) || day.Equal(current.AddDate(0, 0, -1)) {
			streak++
			current = day
		} else {
			break
		}
	}

	return streak
}
