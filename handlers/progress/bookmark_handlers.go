package progress

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/utils/response"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UpdateNotesRequest model for per-challenge notes
type UpdateNotesRequest struct {
	Notes *string `json:"notes" binding:"required"`
}

// GetBookmarks returns the user's bookmarked published challenges
// @Summary List Bookmarks
// @Tags Progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /progress/bookmarks [get]
func GetBookmarks(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var bookmarked []models.UserProgress
	if err := database.DB.Preload("Challenge").Preload("Challenge.Category").
		Joins("JOIN challenges ON challenges.id = user_progresses.challenge_id").
		Where("user_progresses.user_id = ? AND user_progresses.is_bookmarked = ? AND challenges.is_published = ?",
			user.ID, true, true).
		Find(&bookmarked).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch bookmarks")
		return
	}

	bookmarks := make([]map[string]interface{}, 0, len(bookmarked))
	for i := range bookmarked {
		entry := bookmarked[i].ToDict()
		if bookmarked[i].Challenge != nil {
			entry["challenge"] = bookmarked[i].Challenge.ToDict(false)
		} else {
			entry["challenge"] = nil
		}
		bookmarks = append(bookmarks, entry)
	}

	c.JSON(http.StatusOK, gin.H{"bookmarks": bookmarks})
}

// ToggleBookmark flips the bookmark flag for a challenge
// @Summary Toggle Bookmark
// @Tags Progress
// @Produce json
// @Param challenge_id path int true "Challenge ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /progress/bookmarks/{challenge_id} [post]
func ToggleBookmark(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	challengeID, err := strconv.Atoi(c.Param("challenge_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var challenge models.Challenge
	if err := database.DB.Where("id = ? AND is_published = ?", challengeID, true).
		First(&challenge).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	now := time.Now().UTC()

	var progress models.UserProgress
	err = database.DB.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:       user.ID,
			ChallengeID:  challenge.ID,
			Status:       models.StatusNotStarted,
			IsBookmarked: true,
			LastAccessed: now,
		}
		if err := database.DB.Create(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to toggle bookmark")
			return
		}
	} else if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to toggle bookmark")
		return
	} else {
		progress.IsBookmarked = !progress.IsBookmarked
		progress.LastAccessed = now
		if err := database.DB.Save(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to toggle bookmark")
			return
		}
	}

	action := "added to"
	if !progress.IsBookmarked {
		action = "removed from"
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Challenge " + action + " bookmarks",
		"is_bookmarked": progress.IsBookmarked,
	})
}

// UpdateNotes replaces the user's notes for a challenge
// @Summary Update Notes
// @Tags Progress
// @Accept json
// @Produce json
// @Param challenge_id path int true "Challenge ID"
// @Param request body UpdateNotesRequest true "Notes"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /progress/notes/{challenge_id} [put]
func UpdateNotes(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req UpdateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Notes == nil {
		response.Error(c, http.StatusBadRequest, "Notes field is required")
		return
	}

	challengeID, err := strconv.Atoi(c.Param("challenge_id"))
	if err != nil {
		response.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	var challenge models.Challenge
	if err := database.DB.Where("id = ? AND is_published = ?", challengeID, true).
		First(&challenge).Error; err != nil {
		response.Error(c, http.StatusNotFound, "Challenge not found")
		return
	}

	now := time.Now().UTC()

	var progress models.UserProgress
	err = database.DB.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:       user.ID,
			ChallengeID:  challenge.ID,
			Status:       models.StatusNotStarted,
			Notes:        *req.Notes,
			LastAccessed: now,
		}
		if err := database.DB.Create(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update notes")
			return
		}
	} else if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to update notes")
		return
	} else {
		progress.Notes = *req.Notes
		progress.LastAccessed = now
		if err := database.DB.Save(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to update notes")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notes updated successfully",
		"notes":   progress.Notes,
	})
}

// GetAchievements returns the user's earned achievements plus the active
// catalog
// @Summary List Achievements
// @Tags Progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /progress/achievements [get]
func GetAchievements(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var earned []models.UserAchievement
	if err := database.DB.Preload("Achievement").
		Where("user_id = ?", user.ID).
		Order("earned_at DESC").
		Find(&earned).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch achievements")
		return
	}

	var available []models.Achievement
	if err := database.DB.Where("is_active = ?", true).Order("criteria_value").
		Find(&available).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch achievements")
		return
	}

	earnedOut := make([]map[string]interface{}, 0, len(earned))
	for i := range earned {
		earnedOut = append(earnedOut, earned[i].ToDict())
	}

	availableOut := make([]map[string]interface{}, 0, len(available))
	for i := range available {
		availableOut = append(availableOut, available[i].ToDict())
	}

	c.JSON(http.StatusOK, gin.H{
		"earned":    earnedOut,
		"available": availableOut,
	})
}
