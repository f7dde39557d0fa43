package models

import "time"

// Submission records one user's answer attempts for one challenge. For
// multi-question challenges the first correct row accumulates later
// correct answers inside SubmittedAnswer instead of spawning new rows.
type Submission struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	UserID      uint `gorm:"not null;index:idx_submission_user_challenge" json:"user_id"`
	ChallengeID uint `gorm:"not null;index:idx_submission_user_challenge" json:"challenge_id"`

	SubmittedAnswer AnswerMap `gorm:"type:jsonb;not null" json:"submitted_answer"`
	IsCorrect       bool      `gorm:"not null" json:"is_correct"`
	PointsAwarded   int       `gorm:"not null;default:0" json:"points_awarded"`

	StartedAt      time.Time `gorm:"not null" json:"started_at"`
	SubmittedAt    time.Time `gorm:"not null" json:"submitted_at"`
	CompletionTime *float64  `json:"completion_time"` // minutes

	Feedback  string `gorm:"type:text" json:"feedback"`
	HintCount int    `gorm:"not null;default:0" json:"hint_count"`

	User      *User      `gorm:"foreignKey:UserID" json:"-"`
	Challenge *Challenge `gorm:"foreignKey:ChallengeID" json:"-"`
}

func (s *Submission) ToDict() map[string]interface{} {
	var challengeTitle interface{}
	if s.Challenge != nil {
		challengeTitle = s.Challenge.Title
	}

	return map[string]interface{}{
		"id":               s.ID,
		"challenge_id":     s.ChallengeID,
		"challenge_title":  challengeTitle,
		"submitted_answer": s.SubmittedAnswer.String(),
		"is_correct":       s.IsCorrect,
		"points_awarded":   s.PointsAwarded,
		"started_at":       formatTime(&s.StartedAt),
		"submitted_at":     formatTime(&s.SubmittedAt),
		"completion_time":  s.CompletionTime,
		"feedback":         s.Feedback,
		"hint_count":       s.HintCount,
	}
}
