package admin

import (
	"api/database"
	"api/models"
	"api/utils/response"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns platform-wide statistics for administrators
// @Summary Admin Dashboard
// @Tags Admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string
// @Security Bearer
// @Router /admin/dashboard [get]
func GetDashboard(c *gin.Context) {
	db := database.DB
	today := time.Now().UTC().Truncate(24 * time.Hour)

	var totalUsers, activeUsers, newUsersToday int64
	db.Model(&models.User{}).Count(&totalUsers)
	db.Model(&models.User{}).Where("is_active = ?", true).Count(&activeUsers)
	db.Model(&models.User{}).Where("created_at >= ?", today).Count(&newUsersToday)

	var totalChallenges, publishedChallenges, featuredChallenges int64
	db.Model(&models.Challenge{}).Count(&totalChallenges)
	db.Model(&models.Challenge{}).Where("is_published = ?", true).Count(&publishedChallenges)
	db.Model(&models.Challenge{}).Where("is_featured = ?", true).Count(&featuredChallenges)

	var totalSubmissions, successfulSubmissions, submissionsToday int64
	db.Model(&models.Submission{}).Count(&totalSubmissions)
	db.Model(&models.Submission{}).Where("is_correct = ?", true).Count(&successfulSubmissions)
	db.Model(&models.Submission{}).Where("submitted_at >= ?", today).Count(&submissionsToday)

	var categories []models.ChallengeCategory
	if err := db.Order("name").Find(&categories).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch dashboard data")
		return
	}

	categoryStats := make([]map[string]interface{}, 0, len(categories))
	for i := range categories {
		var challenges []models.Challenge
		db.Where("category_id = ?", categories[i].ID).Find(&challenges)

		publishedCount := 0
		totalAttempts := 0
		successfulAttempts := 0
		for j := range challenges {
			if challenges[j].IsPublished {
				publishedCount++
			}
			totalAttempts += challenges[j].TotalAttempts
			successfulAttempts += challenges[j].SuccessfulAttempts
		}

		successRate := 0.0
		if totalAttempts > 0 {
			successRate = math.Round(float64(successfulAttempts)/float64(totalAttempts)*1000) / 10
		}

		categoryStats = append(categoryStats, map[string]interface{}{
			"category":        categories[i].ToDict(),
			"challenge_count": publishedCount,
			"total_attempts":  totalAttempts,
			"success_rate":    successRate,
		})
	}

	submissionSuccessRate := 0.0
	if totalSubmissions > 0 {
		submissionSuccessRate = math.Round(float64(successfulSubmissions)/float64(totalSubmissions)*1000) / 10
	}

	c.JSON(http.StatusOK, gin.H{
		"users": gin.H{
			"total":     totalUsers,
			"active":    activeUsers,
			"new_today": newUsersToday,
		},
		"challenges": gin.H{
			"total":     totalChallenges,
			"published": publishedChallenges,
			"featured":  featuredChallenges,
		},
		"submissions": gin.H{
			"total":        totalSubmissions,
			"successful":   successfulSubmissions,
			"today":        submissionsToday,
			"success_rate": submissionSuccessRate,
		},
		"categories": categoryStats,
	})
}
