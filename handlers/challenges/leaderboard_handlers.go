package challenges

import (
	"api/database"
	"api/models"
	"api/utils/response"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetRecentSolves returns the 10 most recent successful solves
// @Summary Recent Solves
// @Tags Challenges
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /challenges/{identifier}/recent-solves [get]
func GetRecentSolves(c *gin.Context) {
	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	var submissions []models.Submission
	if err := database.DB.Preload("User").
		Where("challenge_id = ? AND is_correct = ?", challenge.ID, true).
		Order("submitted_at DESC").
		Limit(10).
		Find(&submissions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch recent solves")
		return
	}

	now := time.Now().UTC()
	solves := make([]map[string]interface{}, 0, len(submissions))
	for i := range submissions {
		s := &submissions[i]

		var username interface{}
		var userID interface{}
		if s.User != nil {
			username = s.User.Username
			userID = s.User.ID
		}

		solves = append(solves, map[string]interface{}{
			"username":      username,
			"user_id":       userID,
			"completed_at":  s.SubmittedAt.UTC().Format(time.RFC3339),
			"time_ago":      timeAgo(now, s.SubmittedAt),
			"points_earned": s.PointsAwarded,
		})
	}

	c.JSON(http.StatusOK, gin.H{"recent_solves": solves})
}

// timeAgo renders a human readable interval since a submission
func timeAgo(now, then time.Time) string {
	diff := now.Sub(then.UTC())

	switch {
	case diff >= 24*time.Hour:
		days := int(diff.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	case diff >= time.Hour:
		hours := int(diff.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case diff >= time.Minute:
		minutes := int(diff.Minutes())
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	default:
		return "Just now"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}

// formatCompletionTime renders minutes as "Xm" or "Xh Ym"
func formatCompletionTime(minutes *float64) string {
	if minutes == nil {
		return "N/A"
	}
	if *minutes < 60 {
		return fmt.Sprintf("%dm", int(*minutes))
	}
	hours := int(*minutes / 60)
	remainder := int(*minutes) % 60
	return fmt.Sprintf("%dh %dm", hours, remainder)
}

// GetChallengeLeaderboard returns the top solvers and the per-user points
// progression timeline for one challenge
// @Summary Challenge Leaderboard
// @Tags Challenges
// @Produce json
// @Param identifier path string true "Challenge id or slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /challenges/{identifier}/leaderboard [get]
func GetChallengeLeaderboard(c *gin.Context) {
	challenge, err := findPublished(c.Param("identifier"))
	if err != nil {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}

	// Every submission, in order, for the progression timeline
	var allSubmissions []models.Submission
	if err := database.DB.Preload("User").
		Where("challenge_id = ?", challenge.ID).
		Order("submitted_at ASC").
		Find(&allSubmissions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch challenge leaderboard")
		return
	}

	type progression struct {
		username    string
		avatarURL   string
		submissions []*models.Submission
	}

	userOrder := make([]uint, 0)
	progressions := make(map[uint]*progression)
	totalCompletions := 0

	for i := range allSubmissions {
		s := &allSubmissions[i]
		if s.IsCorrect {
			totalCompletions++
		}

		entry, seen := progressions[s.UserID]
		if !seen {
			entry = &progression{}
			if s.User != nil {
				entry.username = s.User.Username
				entry.avatarURL = s.User.AvatarURL
			}
			progressions[s.UserID] = entry
			userOrder = append(userOrder, s.UserID)
		}
		entry.submissions = append(entry.submissions, s)
	}

	timeline := make([]map[string]interface{}, 0)
	for idx, userID := range userOrder {
		entry := progressions[userID]
		userIndex := idx + 1
		cumulative := 0

		timeline = append(timeline, map[string]interface{}{
			"user_index":        userIndex,
			"username":          entry.username,
			"user_id":           userID,
			"avatar_url":        entry.avatarURL,
			"points":            0,
			"cumulative_points": 0,
			"submission_number": 0,
			"is_start":          true,
		})

		for i, s := range entry.submissions {
			if s.IsCorrect {
				cumulative += s.PointsAwarded
			}
			timeline = append(timeline, map[string]interface{}{
				"user_index":        userIndex,
				"username":          entry.username,
				"user_id":           userID,
				"avatar_url":        entry.avatarURL,
				"points":            s.PointsAwarded,
				"cumulative_points": cumulative,
				"submission_number": i + 1,
				"submitted_at":      s.SubmittedAt.UTC().Format(time.RFC3339),
				"is_correct":        s.IsCorrect,
				"is_start":          false,
			})
		}
	}

	// Top performers ranked by speed, then points
	var topSubmissions []models.Submission
	if err := database.DB.Preload("User").
		Where("challenge_id = ? AND is_correct = ?", challenge.ID, true).
		Order("completion_time ASC NULLS LAST, points_awarded DESC, submitted_at ASC").
		Limit(10).
		Find(&topSubmissions).Error; err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to fetch challenge leaderboard")
		return
	}

	leaderboard := make([]map[string]interface{}, 0, len(topSubmissions))
	for i := range topSubmissions {
		s := &topSubmissions[i]

		var username, avatarURL interface{}
		if s.User != nil {
			username = s.User.Username
			avatarURL = s.User.AvatarURL
		}

		leaderboard = append(leaderboard, map[string]interface{}{
			"rank":            i + 1,
			"user_id":         s.UserID,
			"username":        username,
			"avatar_url":      avatarURL,
			"points_awarded":  s.PointsAwarded,
			"completion_time": s.CompletionTime,
			"time_display":    formatCompletionTime(s.CompletionTime),
			"submitted_at":    s.SubmittedAt.UTC().Format(time.RFC3339),
			"hint_count":      s.HintCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard":       leaderboard,
		"timeline":          timeline,
		"total_completions": totalCompletions,
		"max_points":        challenge.Points,
		"total_questions":   challenge.TotalQuestions(),
		"total_users":       len(progressions),
	})
}
