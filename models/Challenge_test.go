package models

import "testing"

func TestChallengeTotalQuestions(t *testing.T) {
	structured := Challenge{Questions: QuestionList{
		{ID: 1, Question: "a"},
		{ID: 2, Question: "b"},
	}}
	if got := structured.TotalQuestions(); got != 2 {
		t.Errorf("TotalQuestions = %d, want 2", got)
	}

	legacy := Challenge{AnswerType: "flag", CorrectAnswer: "CTF{x}"}
	if got := legacy.TotalQuestions(); got != 1 {
		t.Errorf("legacy TotalQuestions = %d, want 1", got)
	}
}

func TestChallengeSuccessRate(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		successful int
		want       float64
	}{
		{"no attempts", 0, 0, 0},
		{"all successful", 10, 10, 100},
		{"one third", 3, 1, 33.3},
		{"rounded to one decimal", 7, 2, 28.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Challenge{TotalAttempts: tt.total, SuccessfulAttempts: tt.successful}
			if got := c.SuccessRate(); got != tt.want {
				t.Errorf("SuccessRate() = %v, want %v", got, tt.want)
			}
		})
	}
}
