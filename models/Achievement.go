package models

import "time"

// Achievement criteria types
const (
	AchievementChallengesCompleted = "challenges_completed"
	AchievementPointsEarned        = "points_earned"
)

// Achievement is a criteria-based badge
type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`
	Icon        string `gorm:"type:varchar(50)" json:"icon"`
	BadgeColor  string `gorm:"type:varchar(7)" json:"badge_color"`

	AchievementType string `gorm:"type:varchar(50);not null" json:"achievement_type"`
	CriteriaValue   int    `json:"criteria_value"`
	CategoryID      *uint  `json:"category_id"`

	CreatedAt time.Time `json:"created_at"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
}

func (a *Achievement) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":               a.ID,
		"name":             a.Name,
		"description":      a.Description,
		"icon":             a.Icon,
		"badge_color":      a.BadgeColor,
		"achievement_type": a.AchievementType,
		"criteria_value":   a.CriteriaValue,
	}
}

// UserAchievement records which user earned which badge, each pair unique
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:uniq_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;uniqueIndex:uniq_user_achievement" json:"achievement_id"`
	EarnedAt      time.Time `gorm:"not null" json:"earned_at"`

	User        *User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement *Achievement `gorm:"foreignKey:AchievementID" json:"-"`
}

func (ua *UserAchievement) ToDict() map[string]interface{} {
	var achievement interface{}
	if ua.Achievement != nil {
		achievement = ua.Achievement.ToDict()
	}
	return map[string]interface{}{
		"id":          ua.ID,
		"achievement": achievement,
		"earned_at":   formatTime(&ua.EarnedAt),
	}
}
