package models

import "time"

// Progress status values
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// UserProgress is the mutable per-user-per-challenge state: status,
// attempts, hints, bookmark and notes. One row per (user, challenge).
type UserProgress struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;uniqueIndex:uniq_user_challenge_progress" json:"user_id"`
	ChallengeID uint `gorm:"not null;uniqueIndex:uniq_user_challenge_progress" json:"challenge_id"`

	Status       string     `gorm:"type:varchar(20);not null;default:not_started" json:"status"`
	StartedAt    *time.Time `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at"`
	LastAccessed time.Time  `gorm:"not null" json:"last_accessed"`

	AttemptsCount int     `gorm:"not null;default:0" json:"attempts_count"`
	HintsUsed     int     `gorm:"not null;default:0" json:"hints_used"`
	TimeSpent     float64 `gorm:"not null;default:0" json:"time_spent"` // minutes

	IsBookmarked bool   `gorm:"not null;default:false" json:"is_bookmarked"`
	Notes        string `gorm:"type:text" json:"notes"`

	FirstAttemptSuccess bool `gorm:"not null;default:false" json:"first_attempt_success"`
	SpeedBonusEarned    bool `gorm:"not null;default:false" json:"speed_bonus_earned"`

	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"-"`
}

func (p *UserProgress) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":                    p.ID,
		"challenge_id":          p.ChallengeID,
		"status":                p.Status,
		"started_at":            formatTime(p.StartedAt),
		"completed_at":          formatTime(p.CompletedAt),
		"last_accessed":         formatTime(&p.LastAccessed),
		"attempts_count":        p.AttemptsCount,
		"hints_used":            p.HintsUsed,
		"time_spent":            p.TimeSpent,
		"is_bookmarked":         p.IsBookmarked,
		"notes":                 p.Notes,
		"first_attempt_success": p.FirstAttemptSuccess,
		"speed_bonus_earned":    p.SpeedBonusEarned,
	}
}

// Start moves a not_started progress into in_progress.
func (p *UserProgress) Start(now time.Time) {
	if p.Status == StatusNotStarted {
		p.Status = StatusInProgress
		p.StartedAt = &now
	}
	p.LastAccessed = now
}

// Complete marks the progress completed. The speed bonus flag is set when
// the completion time is within half of the challenge's time limit.
func (p *UserProgress) Complete(now time.Time, firstAttempt bool, completionTime *float64, timeLimit *int) {
	p.Status = StatusCompleted
	p.CompletedAt = &now
	p.LastAccessed = now
	p.FirstAttemptSuccess = firstAttempt && p.AttemptsCount == 1

	if completionTime != nil {
		p.TimeSpent = *completionTime
		if timeLimit != nil && *completionTime <= float64(*timeLimit)*0.5 {
			p.SpeedBonusEarned = true
		}
	}
}

// UseHint advances the hint counter.
func (p *UserProgress) UseHint(now time.Time) {
	p.HintsUsed++
	p.LastAccessed = now
}
