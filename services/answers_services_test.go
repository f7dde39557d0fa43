package services

import (
	"testing"

	"api/models"
)

func structuredChallenge() *models.Challenge {
	return &models.Challenge{
		Questions: models.QuestionList{
			{ID: 1, Question: "What port does HTTPS use?", CorrectAnswer: "443", AnswerFormat: "number"},
			{ID: 2, Question: "Flag?", CorrectAnswer: "CTF{s3cr3t}", AnswerFormat: "flag"},
			{ID: 3, Question: "Protocol name?", CorrectAnswer: "TLS", AnswerFormat: "text"},
		},
	}
}

func TestResolveScheme(t *testing.T) {
	structured := ResolveScheme(structuredChallenge())
	if structured.Kind != SchemeStructured {
		t.Errorf("expected structured scheme, got %v", structured.Kind)
	}
	if structured.TotalQuestions() != 3 {
		t.Errorf("expected 3 questions, got %d", structured.TotalQuestions())
	}

	legacy := ResolveScheme(&models.Challenge{
		AnswerType:    AnswerTypeFlag,
		CorrectAnswer: "CTF{old}",
	})
	if legacy.Kind != SchemeLegacy {
		t.Errorf("expected legacy scheme, got %v", legacy.Kind)
	}
	if legacy.TotalQuestions() != 1 {
		t.Errorf("expected 1 question for legacy, got %d", legacy.TotalQuestions())
	}
}

func TestValidateAnswerStructuredSingleQuestion(t *testing.T) {
	scheme := ResolveScheme(structuredChallenge())

	tests := []struct {
		name        string
		answers     models.AnswerMap
		questionKey string
		want        bool
	}{
		{"number exact", models.AnswerMap{"question_1": "443"}, "question_1", true},
		{"number float equivalent", models.AnswerMap{"question_1": "443.0"}, "question_1", true},
		{"number wrong", models.AnswerMap{"question_1": "80"}, "question_1", false},
		{"flag case insensitive", models.AnswerMap{"question_2": "ctf{S3CR3T}"}, "question_2", true},
		{"flag wrong", models.AnswerMap{"question_2": "CTF{nope}"}, "question_2", false},
		{"text whitespace trimmed", models.AnswerMap{"question_3": "  tls  "}, "question_3", true},
		{"missing key", models.AnswerMap{"question_1": "443"}, "question_2", false},
		{"unknown question", models.AnswerMap{"question_9": "443"}, "question_9", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAnswer(scheme, tt.answers, tt.questionKey)
			if got != tt.want {
				t.Errorf("ValidateAnswer(%v, %q) = %v, want %v", tt.answers, tt.questionKey, got, tt.want)
			}
		})
	}
}

func TestValidateAnswerStructuredAllQuestions(t *testing.T) {
	scheme := ResolveScheme(structuredChallenge())

	complete := models.AnswerMap{
		"question_1": "443",
		"question_2": "CTF{s3cr3t}",
		"question_3": "TLS",
	}
	if !ValidateAnswer(scheme, complete, "") {
		t.Error("complete correct answer map should validate")
	}

	partial := models.AnswerMap{
		"question_1": "443",
		"question_2": "CTF{s3cr3t}",
	}
	if ValidateAnswer(scheme, partial, "") {
		t.Error("partial answer map should not validate without a question key")
	}

	oneWrong := models.AnswerMap{
		"question_1": "443",
		"question_2": "CTF{wrong}",
		"question_3": "TLS",
	}
	if ValidateAnswer(scheme, oneWrong, "") {
		t.Error("answer map with one wrong answer should not validate")
	}
}

func TestValidateAnswerLegacy(t *testing.T) {
	tests := []struct {
		name      string
		challenge models.Challenge
		submitted string
		want      bool
	}{
		{
			"flag case insensitive",
			models.Challenge{AnswerType: AnswerTypeFlag, CorrectAnswer: "CTF{abc}"},
			"ctf{ABC}",
			true,
		},
		{
			"flag wrong",
			models.Challenge{AnswerType: AnswerTypeFlag, CorrectAnswer: "CTF{abc}"},
			"CTF{abd}",
			false,
		},
		{
			"text simple match",
			models.Challenge{AnswerType: AnswerTypeText, CorrectAnswer: "phishing"},
			"Phishing",
			true,
		},
		{
			"text regex match",
			models.Challenge{AnswerType: AnswerTypeText, CorrectAnswer: "ignored", ValidationRegex: `10\.0\.\d+\.\d+`},
			"10.0.12.7",
			true,
		},
		{
			"text regex no match",
			models.Challenge{AnswerType: AnswerTypeText, CorrectAnswer: "ignored", ValidationRegex: `10\.0\.\d+\.\d+`},
			"192.168.1.1",
			false,
		},
		{
			"multiple choice exact case",
			models.Challenge{AnswerType: AnswerTypeMultipleChoice, CorrectAnswer: "B"},
			"b",
			false,
		},
		{
			"multiple choice match",
			models.Challenge{AnswerType: AnswerTypeMultipleChoice, CorrectAnswer: "B"},
			"B",
			true,
		},
		{
			"no stored answer",
			models.Challenge{AnswerType: AnswerTypeFlag},
			"anything",
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme := ResolveScheme(&tt.challenge)
			answers := models.AnswerMap{models.LegacyAnswerKey: tt.submitted}
			got := ValidateAnswer(scheme, answers, "")
			if got != tt.want {
				t.Errorf("ValidateAnswer(%q) = %v, want %v", tt.submitted, got, tt.want)
			}
		})
	}
}
