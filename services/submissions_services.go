package services

import (
	"errors"
	"fmt"
	"time"

	"api/metrics"
	"api/models"

	"gorm.io/gorm"
)

// ErrAlreadyCompleted is returned when a user submits against a challenge
// they have fully completed.
var ErrAlreadyCompleted = errors.New("challenge already completed")

// SubmitResult is the outcome of one graded submission
type SubmitResult struct {
	IsCorrect          bool
	PointsAwarded      int
	ChallengeCompleted bool
	HintAvailable      bool
	Submission         *models.Submission
	Progress           *models.UserProgress
	TotalScore         int

	// PreviousSubmission is set alongside ErrAlreadyCompleted
	PreviousSubmission *models.Submission
}

// SubmitAnswer grades one answer and applies the whole submit workflow in
// a single transaction: attempt counting, the completed-challenge
// conflict, answer-map merging, scoring, challenge stats and user stats.
func SubmitAnswer(db *gorm.DB, user *models.User, challenge *models.Challenge, rawAnswer string, questionKey string) (*SubmitResult, error) {
	result := &SubmitResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		scheme := ResolveScheme(challenge)

		// Get or create the progress row
		var progress models.UserProgress
		err := tx.Where("user_id = ? AND challenge_id = ?", user.ID, challenge.ID).First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = models.UserProgress{
				UserID:       user.ID,
				ChallengeID:  challenge.ID,
				Status:       models.StatusInProgress,
				StartedAt:    &now,
				LastAccessed: now,
			}
			if err := tx.Create(&progress).Error; err != nil {
				return fmt.Errorf("failed to create progress: %w", err)
			}
		} else if err != nil {
			return fmt.Errorf("failed to fetch progress: %w", err)
		}

		progress.AttemptsCount++
		progress.LastAccessed = now

		// An existing correct row only blocks when every question is
		// already answered
		var existing models.Submission
		hasExisting := true
		err = tx.Where("user_id = ? AND challenge_id = ? AND is_correct = ?", user.ID, challenge.ID, true).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hasExisting = false
		} else if err != nil {
			return fmt.Errorf("failed to fetch submissions: %w", err)
		}

		if hasExisting && existing.SubmittedAnswer.AnsweredCount() >= scheme.TotalQuestions() {
			result.PreviousSubmission = &existing
			metrics.SubmissionCounter.WithLabelValues("conflict").Inc()
			return ErrAlreadyCompleted
		}

		answers, _ := models.ParseAnswerMap(rawAnswer)
		isCorrect := ValidateAnswer(scheme, answers, questionKey)

		var completionTime *float64
		if progress.StartedAt != nil {
			minutes := now.Sub(*progress.StartedAt).Minutes()
			completionTime = &minutes
		}

		pointsAwarded := 0
		if isCorrect {
			pointsAwarded = CalculatePoints(challenge.Points, progress.HintsUsed, completionTime, challenge.TimeLimit)
		}

		// Wrong answers after a partial completion keep the existing row
		// untouched; correct answers merge into it
		var submission *models.Submission
		switch {
		case hasExisting && !isCorrect:
			submission = &existing
		case hasExisting && isCorrect:
			existing.SubmittedAnswer = existing.SubmittedAnswer.Merge(answers)
			existing.SubmittedAt = now
			existing.PointsAwarded += pointsAwarded
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update submission: %w", err)
			}
			submission = &existing
		default:
			startedAt := now
			if progress.StartedAt != nil {
				startedAt = *progress.StartedAt
			}
			submission = &models.Submission{
				UserID:          user.ID,
				ChallengeID:     challenge.ID,
				SubmittedAnswer: answers,
				IsCorrect:       isCorrect,
				PointsAwarded:   pointsAwarded,
				StartedAt:       startedAt,
				SubmittedAt:     now,
				CompletionTime:  completionTime,
				HintCount:       progress.HintsUsed,
			}
			if err := tx.Create(submission).Error; err != nil {
				return fmt.Errorf("failed to create submission: %w", err)
			}
		}

		challenge.TotalAttempts++

		// Full completion requires every question answered correctly
		completed := false
		if isCorrect && submission.SubmittedAnswer.AnsweredCount() >= scheme.TotalQuestions() {
			completed = true
			challenge.SuccessfulAttempts++

			firstAttempt := progress.AttemptsCount == 1
			progress.Complete(now, firstAttempt, completionTime, challenge.TimeLimit)

			if err := user.UpdateStats(tx); err != nil {
				return fmt.Errorf("failed to update user stats: %w", err)
			}
			if err := models.UpdateAllRankings(tx); err != nil {
				return fmt.Errorf("failed to update rankings: %w", err)
			}
			if err := EvaluateAchievements(tx, user); err != nil {
				return fmt.Errorf("failed to evaluate achievements: %w", err)
			}
		}

		if err := tx.Save(&progress).Error; err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
		if err := tx.Model(challenge).Updates(map[string]interface{}{
			"total_attempts":      challenge.TotalAttempts,
			"successful_attempts": challenge.SuccessfulAttempts,
		}).Error; err != nil {
			return fmt.Errorf("failed to update challenge stats: %w", err)
		}

		result.IsCorrect = isCorrect
		result.PointsAwarded = pointsAwarded
		result.ChallengeCompleted = completed
		result.Submission = submission
		result.Progress = &progress
		result.TotalScore = user.TotalScore
		result.HintAvailable = !isCorrect && len(challenge.Hints) > progress.HintsUsed

		return nil
	})

	if err != nil {
		return result, err
	}

	if result.IsCorrect {
		metrics.SubmissionCounter.WithLabelValues("correct").Inc()
	} else {
		metrics.SubmissionCounter.WithLabelValues("incorrect").Inc()
	}
	if result.ChallengeCompleted {
		metrics.ChallengeCompletions.Inc()
	}

	return result, nil
}

// NextHint hands out the next unused hint for a challenge, charging it to
// the user's progress.
func NextHint(db *gorm.DB, userID uint, challenge *models.Challenge) (string, *models.UserProgress, error) {
	var progress models.UserProgress
	if err := db.Where("user_id = ? AND challenge_id = ?", userID, challenge.ID).First(&progress).Error; err != nil {
		return "", nil, err
	}

	if progress.HintsUsed >= len(challenge.Hints) {
		return "", &progress, gorm.ErrRecordNotFound
	}

	hint := challenge.Hints[progress.HintsUsed]
	progress.UseHint(time.Now().UTC())

	if err := db.Save(&progress).Error; err != nil {
		return "", nil, err
	}

	return hint, &progress, nil
}
