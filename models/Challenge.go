package models

import (
	"math"
	"time"
)

// Challenge is a single training exercise. A challenge carries either an
// ordered list of structured questions or a legacy single-answer triple
// (answer_type, correct_answer, validation_regex).
type Challenge struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string `gorm:"type:varchar(220);uniqueIndex" json:"slug"`
	Description string `gorm:"type:text;not null" json:"description"`

	// Content
	Scenario     string       `gorm:"type:text" json:"scenario"`
	Instructions string       `gorm:"type:text;not null" json:"instructions"`
	Questions    QuestionList `gorm:"type:jsonb" json:"questions"`
	Hints        StringList   `gorm:"type:jsonb" json:"-"`

	// Configuration
	ChallengeType   string `gorm:"type:varchar(50);not null" json:"challenge_type"`
	Difficulty      string `gorm:"type:varchar(20);not null" json:"difficulty"`
	Author          string `gorm:"type:varchar(100)" json:"author"`
	Series          string `gorm:"type:varchar(200)" json:"series"`
	Points          int    `gorm:"not null;default:100" json:"points"`
	TimeLimit       *int   `json:"time_limit"` // minutes
	OperatingSystem string `gorm:"type:varchar(50)" json:"operating_system"`

	// Files and resources
	FileAttachments AttachmentList `gorm:"type:jsonb" json:"file_attachments"`
	SuggestedTools  StringList     `gorm:"type:jsonb" json:"suggested_tools"`
	DockerImage     string         `gorm:"type:varchar(255)" json:"-"`
	EnvironmentURL  string         `gorm:"type:varchar(255)" json:"environment_url"`

	// Legacy answer triple
	AnswerType      string `gorm:"type:varchar(20);not null" json:"answer_type"`
	CorrectAnswer   string `gorm:"type:text" json:"-"`
	AnswerFormat    string `gorm:"type:varchar(100)" json:"answer_format"`
	ValidationRegex string `gorm:"type:varchar(500)" json:"-"`

	// Publishing
	IsPublished bool       `gorm:"not null;default:false" json:"is_published"`
	IsFeatured  bool       `gorm:"not null;default:false" json:"is_featured"`
	PublishDate *time.Time `json:"publish_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedBy uint      `gorm:"not null" json:"created_by"`

	// Stats
	TotalAttempts         int      `gorm:"not null;default:0" json:"total_attempts"`
	SuccessfulAttempts    int      `gorm:"not null;default:0" json:"successful_attempts"`
	AverageCompletionTime *float64 `json:"average_completion_time"`

	CategoryID uint               `gorm:"not null" json:"category_id"`
	Category   *ChallengeCategory `gorm:"foreignKey:CategoryID" json:"-"`

	Submissions []Submission `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
}

// TotalQuestions returns how many answers a full completion requires.
// Legacy challenges count as a single question.
func (c *Challenge) TotalQuestions() int {
	if len(c.Questions) > 0 {
		return len(c.Questions)
	}
	return 1
}

// SuccessRate returns the percentage of successful attempts, one decimal.
func (c *Challenge) SuccessRate() float64 {
	attempts := c.TotalAttempts
	if attempts == 0 {
		attempts = 1
	}
	return math.Round(float64(c.SuccessfulAttempts)/float64(attempts)*1000) / 10
}

// ToDict serializes the challenge. The sensitive view adds hints, the
// stored answers and publication internals and is reserved for admins.
func (c *Challenge) ToDict(includeSensitive bool) map[string]interface{} {
	questions := c.Questions
	if questions == nil {
		questions = QuestionList{}
	}
	attachments := c.FileAttachments
	if attachments == nil {
		attachments = AttachmentList{}
	}
	tools := c.SuggestedTools
	if tools == nil {
		tools = StringList{}
	}

	data := map[string]interface{}{
		"id":                  c.ID,
		"title":               c.Title,
		"slug":                c.Slug,
		"description":         c.Description,
		"scenario":            c.Scenario,
		"instructions":        c.Instructions,
		"questions":           publicQuestions(questions, includeSensitive),
		"challenge_type":      c.ChallengeType,
		"difficulty":          c.Difficulty,
		"author":              c.Author,
		"series":              c.Series,
		"points":              c.Points,
		"time_limit":          c.TimeLimit,
		"operating_system":    c.OperatingSystem,
		"file_attachments":    attachments,
		"suggested_tools":     tools,
		"environment_url":     c.EnvironmentURL,
		"answer_type":         c.AnswerType,
		"answer_format":       c.AnswerFormat,
		"is_featured":         c.IsFeatured,
		"publish_date":        formatTime(c.PublishDate),
		"created_at":          formatTime(&c.CreatedAt),
		"total_attempts":      c.TotalAttempts,
		"successful_attempts": c.SuccessfulAttempts,
		"success_rate":        c.SuccessRate(),
	}

	if c.Category != nil {
		data["category"] = c.Category.ToDict()
	} else {
		data["category"] = nil
	}

	if includeSensitive {
		hints := c.Hints
		if hints == nil {
			hints = StringList{}
		}
		data["hints"] = hints
		data["correct_answer"] = c.CorrectAnswer
		data["validation_regex"] = c.ValidationRegex
		data["docker_image"] = c.DockerImage
		data["is_published"] = c.IsPublished
		data["created_by"] = c.CreatedBy
		data["updated_at"] = formatTime(&c.UpdatedAt)
	}

	return data
}

// publicQuestions strips stored answers from the question list unless the
// caller is allowed to see them.
func publicQuestions(questions QuestionList, includeAnswers bool) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(questions))
	for _, q := range questions {
		entry := map[string]interface{}{
			"id":            q.ID,
			"question":      q.Question,
			"answer_format": q.AnswerFormat,
		}
		if includeAnswers {
			entry["correct_answer"] = q.CorrectAnswer
		}
		out = append(out, entry)
	}
	return out
}
