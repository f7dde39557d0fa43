package challenges

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils"
	"api/utils/response"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// findPublished resolves a challenge by numeric id or slug, restricted to
// published challenges.
func findPublished(identifier string) (*models.Challenge, error) {
	query := database.DB.Preload("Category")
	if isDigits(identifier) {
		id, _ := strconv.Atoi(identifier)
		query = query.Where("id = ? AND is_published = ?", id, true)
	} else {
		query = query.Where("slug = ? AND is_published = ?", identifier, true)
	}

	var challenge models.Challenge
	if err := query.First(&challenge).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetCategories returns all challenge categories with their challenge counts
// @Summary List Categories
// @Tags Challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /challenges/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.ChallengeCategory
	if err := database.DB.Order("name").Find(&categories).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	out := make([]map[string]interface{}, 0, len(categories))
	for i := range categories {
		var count int64
		database.DB.Model(&models.Challenge{}).
			Where("category_id = ? AND is_published = ?", categories[i].ID, true).
			Count(&count)
		categories[i].ChallengeCount = count
		out = append(out, categories[i].ToDict())
	}

	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// GetChallenges lists published challenges with optional filters
// @Summary List Challenges
// @Description List published challenges with filtering and pagination
// @Tags Challenges
// @Produce json
// @Param category_id query int false "Filter by category"
// @Param difficulty query string false "Filter by difficulty"
// @Param type query string false "Filter by challenge type"
// @Param search query string false "Search in title and description"
// @Param featured query bool false "Featured challenges only"
// @Param page query int false "Page number"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} map[string]interface{}
// @Router /challenges [get]
func GetChallenges(c *gin.Context) {
	pagination := utils.GetPagination(c, 20, 100)

	query := database.DB.Model(&models.Challenge{}).
		Preload("Category").
		Where("is_published = ?", true)

	if categoryID, err := strconv.Atoi(c.Query("category_id")); err == nil {
		query = query.Where("category_id = ?", categoryID)
	}
	if difficulty := c.Query("difficulty"); difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if challengeType := c.Query("type"); challengeType != "" {
		query = query.Where("challenge_type = ?", challengeType)
	}
	if strings.EqualFold(c.Query("featured"), "true") {
		query = query.Where("is_featured = ?", true)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		term := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFetchFailed)
		return
	}

	var challenges []models.Challenge
	if err := query.
		Order("is_featured DESC, created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.PerPage).
		Find(&challenges).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, ErrFetchFailed)
		return
	}

	out := make([]map[string]interface{}, 0, len(challenges))
	for i := range challenges {
		out = append(out, challenges[i].ToDict(false))
	}

	c.JSON(http.StatusOK, gin.H{
		"challenges": out,
		"pagination": pagination.Meta(total),
	})
}

// GetChallenge returns one challenge by id or slug. Authenticated callers
// also get their progress and completion state.
// @Summary Get Challenge
// @Tags Challenges
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /challenges/{identifier} [get]
func GetChallenge(c *gin.Context) {
	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	data := challenge.ToDict(false)

	if user, ok := middleware.CurrentUser(c); ok {
		var progress models.UserProgress
		if err := database.DB.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
			First(&progress).Error; err == nil {
			data["user_progress"] = progress.ToDict()
		} else {
			data["user_progress"] = nil
		}

		var completedCount int64
		database.DB.Model(&models.Submission{}).
			Where("user_id = ? AND challenge_id = ? AND is_correct = ?", user.ID, challenge.ID, true).
			Count(&completedCount)
		data["user_completed"] = completedCount > 0
	}

	c.JSON(http.StatusOK, gin.H{"challenge": data})
}
