package challenges

import (
	"api/database"
	"api/middleware"
	"api/models"
	"api/services"
	"api/utils/response"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StartChallenge creates or refreshes the progress row for a challenge
// @Summary Start Challenge
// @Tags Challenges
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Security Bearer
// @Router /challenges/{identifier}/start [post]
func StartChallenge(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	now := time.Now().UTC()

	var progress models.UserProgress
	err = database.DB.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		progress = models.UserProgress{
			UserID:       user.ID,
			ChallengeID:  challenge.ID,
			Status:       models.StatusInProgress,
			StartedAt:    &now,
			LastAccessed: now,
		}
		if err := database.DB.Create(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to start challenge")
			return
		}
	} else if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to start challenge")
		return
	} else {
		progress.Start(now)
		if err := database.DB.Save(&progress).Error; err != nil {
			response.Error(c, http.StatusInternalServerError, "Failed to start challenge")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Challenge started successfully",
		"progress": progress.ToDict(),
	})
}

// SubmitAnswer grades a submitted answer
// @Summary Submit Answer
// @Description Submit an answer for a challenge, optionally for a single question
// @Tags Challenges
// @Accept json
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Param request body SubmitAnswerRequest true "Answer Submission"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409 {object} map[string]string
// @Security Bearer
// @Router /challenges/{identifier}/submit [post]
func SubmitAnswer(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, ErrAnswerRequired)
		return
	}

	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	result, err := services.SubmitAnswer(database.DB, user, challenge, req.Answer, req.QuestionKey)
	if errors.Is(err, services.ErrAlreadyCompleted) {
		c.JSON(http.StatusConflict, gin.H{
			"error":               ErrAlreadyCompleted,
			"is_correct":          true,
			"previous_submission": result.PreviousSubmission.ToDict(),
		})
		return
	}
	if err != nil {
		response.Error(c, http.StatusInternalServerError, ErrSubmitFailed)
		return
	}

	data := gin.H{
		"is_correct":          result.IsCorrect,
		"correct":             result.IsCorrect,
		"points_awarded":      result.PointsAwarded,
		"submission":          result.Submission.ToDict(),
		"total_score":         result.TotalScore,
		"challenge_completed": result.ChallengeCompleted,
	}

	switch {
	case result.ChallengeCompleted:
		data["message"] = "Congratulations! You have completed the entire challenge!"
	case result.IsCorrect:
		data["message"] = "Correct answer! Continue with the remaining questions."
	default:
		data["message"] = "Incorrect answer. Try again!"
		if result.HintAvailable {
			data["hint_available"] = true
		}
	}

	c.JSON(http.StatusOK, data)
}

// GetHint hands out the next unused hint
// @Summary Get Hint
// @Tags Challenges
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404 {object} map[string]string
// @Security Bearer
// @Router /challenges/{identifier}/hint [post]
func GetHint(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	if len(challenge.Hints) == 0 {
		response.Error(c, http.StatusNotFound, ErrNoHintsAvailable)
		return
	}

	var progress models.UserProgress
	if err := database.DB.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).
		First(&progress).Error; err != nil {
		response.Error(c, http.StatusBadRequest, ErrMustStartFirst)
		return
	}

	var completedCount int64
	database.DB.Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND is_correct = ?", user.ID, challenge.ID, true).
		Count(&completedCount)
	if completedCount > 0 {
		response.Error(c, http.StatusBadRequest, "Challenge already completed")
		return
	}

	hint, updated, err := services.NextHint(database.DB, user.ID, challenge)
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrNoMoreHints)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"hint":            hint,
		"hint_number":     updated.HintsUsed,
		"total_hints":     len(challenge.Hints),
		"remaining_hints": len(challenge.Hints) - updated.HintsUsed,
	})
}

// GetMyProgress returns the authenticated user's progress on every challenge
// @Summary My Progress
// @Tags Challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security Bearer
// @Router /challenges/my-progress [get]
func GetMyProgress(c *gin.Context) {
	user, err := middleware.GetUserFromRequest(c)
	if err != nil {
		return
	}

	var progressRecords []models.UserProgress
	if err := database.DB.Where("user_id = ?", user.ID).Find(&progressRecords).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch progress")
		return
	}

	var submissions []models.Submission
	if err := database.DB.Preload("Challenge").Where("user_id = ?", user.ID).Find(&submissions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch progress")
		return
	}

	out := make([]map[string]interface{}, 0, len(progressRecords))
	for i := range progressRecords {
		progress := &progressRecords[i]
		entry := progress.ToDict()

		var challenge models.Challenge
		if err := database.DB.Preload("Category").First(&challenge, progress.ChallengeID).Error; err == nil {
			var category interface{}
			if challenge.Category != nil {
				category = challenge.Category.ToDict()
			}
			entry["challenge"] = map[string]interface{}{
				"id":         challenge.ID,
				"title":      challenge.Title,
				"difficulty": challenge.Difficulty,
				"points":     challenge.Points,
				"category":   category,
			}
		}

		challengeSubmissions := make([]map[string]interface{}, 0)
		for j := range submissions {
			if submissions[j].ChallengeID == progress.ChallengeID {
				challengeSubmissions = append(challengeSubmissions, submissions[j].ToDict())
			}
		}
		entry["submissions"] = challengeSubmissions

		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"progress": out,
		"user_stats": gin.H{
			"total_score":          user.TotalScore,
			"challenges_completed": user.ChallengesCompleted,
			"rank_position":        user.RankPosition,
		},
	})
}
