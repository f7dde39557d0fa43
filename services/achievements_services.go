package services

import (
	"time"

	"api/models"

	"gorm.io/gorm"
)

// EvaluateAchievements awards any active achievement whose criteria the
// user now meets. Called after a full challenge completion, inside the
// submit transaction.
func EvaluateAchievements(db *gorm.DB, user *models.User) error {
	var achievements []models.Achievement
	if err := db.Where("is_active = ?", true).Find(&achievements).Error; err != nil {
		return err
	}

	var earned []models.UserAchievement
	if err := db.Where("user_id = ?", user.ID).Find(&earned).Error; err != nil {
		return err
	}

	earnedIDs := make(map[uint]bool, len(earned))
	for _, ua := range earned {
		earnedIDs[ua.AchievementID] = true
	}

	now := time.Now().UTC()
	for _, achievement := range achievements {
		if earnedIDs[achievement.ID] {
			continue
		}
		if !criteriaMet(achievement, user) {
			continue
		}
		award := models.UserAchievement{
			UserID:        user.ID,
			AchievementID: achievement.ID,
			EarnedAt:      now,
		}
		if err := db.Create(&award).Error; err != nil {
			return err
		}
	}

	return nil
}

func criteriaMet(achievement models.Achievement, user *models.User) bool {
	switch achievement.AchievementType {
	case models.AchievementChallengesCompleted:
		return user.ChallengesCompleted >= achievement.CriteriaValue
	case models.AchievementPointsEarned:
		return user.TotalScore >= achievement.CriteriaValue
	default:
		return false
	}
}
