package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a platform account, either a trainee or an administrator
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"type:varchar(80);unique;not null;index" json:"username"`
	Email        string `gorm:"type:varchar(120);unique;not null;index" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`

	// Profile
	FirstName string `gorm:"type:varchar(50)" json:"first_name"`
	LastName  string `gorm:"type:varchar(50)" json:"last_name"`
	Bio       string `gorm:"type:text" json:"bio"`
	AvatarURL string `gorm:"type:varchar(255)" json:"avatar_url"`

	// Status and permissions
	IsActive   bool `gorm:"not null;default:true" json:"is_active"`
	IsAdmin    bool `gorm:"not null;default:false" json:"is_admin"`
	IsVerified bool `gorm:"not null;default:false" json:"is_verified"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	LastLogin *time.Time `json:"last_login"`

	// Aggregate stats, recomputed from correct submissions
	TotalScore          int  `gorm:"not null;default:0" json:"total_score"`
	ChallengesCompleted int  `gorm:"not null;default:0" json:"challenges_completed"`
	RankPosition        *int `json:"rank_position"`

	Submissions []Submission   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Progress    []UserProgress `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// ToDict serializes the user for API responses. Sensitive fields (email,
// admin/active flags) are only included for the owner and administrators.
func (u *User) ToDict(includeSensitive bool) map[string]interface{} {
	data := map[string]interface{}{
		"id":                   u.ID,
		"username":             u.Username,
		"email":                nil,
		"first_name":           u.FirstName,
		"last_name":            u.LastName,
		"bio":                  u.Bio,
		"avatar_url":           u.AvatarURL,
		"is_verified":          u.IsVerified,
		"created_at":           formatTime(&u.CreatedAt),
		"last_login":           formatTime(u.LastLogin),
		"total_score":          u.TotalScore,
		"challenges_completed": u.ChallengesCompleted,
		"rank_position":        u.RankPosition,
	}

	if includeSensitive {
		data["email"] = u.Email
		data["is_admin"] = u.IsAdmin
		data["is_active"] = u.IsActive
		data["updated_at"] = formatTime(&u.UpdatedAt)
	}

	return data
}

// UpdateStats recomputes total_score and challenges_completed from the
// user's correct submissions.
func (u *User) UpdateStats(db *gorm.DB) error {
	var submissions []Submission
	if err := db.Where("user_id = ? AND is_correct = ?", u.ID, true).Find(&submissions).Error; err != nil {
		return err
	}

	total := 0
	for _, submission := range submissions {
		total += submission.PointsAwarded
	}

	u.ChallengesCompleted = len(submissions)
	u.TotalScore = total

	return db.Model(u).Updates(map[string]interface{}{
		"total_score":          u.TotalScore,
		"challenges_completed": u.ChallengesCompleted,
	}).Error
}

// UpdateAllRankings assigns rank positions to every user with a positive
// score, ordered by total_score descending.
func UpdateAllRankings(db *gorm.DB) error {
	var users []User
	if err := db.Where("total_score > 0").Order("total_score DESC").Find(&users).Error; err != nil {
		return err
	}

	for idx := range users {
		rank := idx + 1
		if err := db.Model(&users[idx]).Update("rank_position", rank).Error; err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t *time.Time) interface{} {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
