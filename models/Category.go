package models

import "time"

// ChallengeCategory groups challenges by topic (forensics, web, crypto, ...)
type ChallengeCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);unique;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Icon        string    `gorm:"type:varchar(50)" json:"icon"`
	Color       string    `gorm:"type:varchar(7)" json:"color"`
	CreatedAt   time.Time `json:"created_at"`

	Challenges []Challenge `gorm:"foreignKey:CategoryID" json:"-"`

	// Published challenge count, filled by queries, not stored
	ChallengeCount int64 `gorm:"-" json:"challenge_count"`
}

func (c *ChallengeCategory) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":              c.ID,
		"name":            c.Name,
		"description":     c.Description,
		"icon":            c.Icon,
		"color":           c.Color,
		"challenge_count": c.ChallengeCount,
	}
}
