package services

import (
	"regexp"
	"strconv"
	"strings"

	"api/models"
)

// Legacy answer types
const (
	AnswerTypeFlag           = "flag"
	AnswerTypeText           = "text"
	AnswerTypeMultipleChoice = "multiple_choice"
)

// SchemeKind distinguishes how a challenge grades answers
type SchemeKind int

const (
	// SchemeLegacy grades one answer against the challenge-level triple
	SchemeLegacy SchemeKind = iota
	// SchemeStructured grades per-question answers against the question list
	SchemeStructured
)

// AnswerScheme is the resolved grading mode of a challenge. It is built
// once per request so every later step (validation, completion check)
// agrees on which mode applies.
type AnswerScheme struct {
	Kind      SchemeKind
	Questions models.QuestionList

	// Legacy triple
	AnswerType      string
	CorrectAnswer   string
	ValidationRegex string
}

// ResolveScheme inspects a challenge and picks its grading mode. A
// non-empty question list always wins over the legacy triple.
func ResolveScheme(challenge *models.Challenge) AnswerScheme {
	if len(challenge.Questions) > 0 {
		return AnswerScheme{
			Kind:      SchemeStructured,
			Questions: challenge.Questions,
		}
	}
	return AnswerScheme{
		Kind:            SchemeLegacy,
		AnswerType:      challenge.AnswerType,
		CorrectAnswer:   challenge.CorrectAnswer,
		ValidationRegex: challenge.ValidationRegex,
	}
}

// TotalQuestions returns how many answers a full completion requires
func (s AnswerScheme) TotalQuestions() int {
	if s.Kind == SchemeStructured {
		return len(s.Questions)
	}
	return 1
}

// QuestionByKey finds the question matching a "question_<id>" key
func (s AnswerScheme) QuestionByKey(key string) (models.Question, bool) {
	for _, q := range s.Questions {
		if questionKey(q.ID) == key {
			return q, true
		}
	}
	return models.Question{}, false
}

func questionKey(id int) string {
	return "question_" + strconv.Itoa(id)
}

// ValidateAnswer grades a submitted answer map. With a questionKey only
// that question is graded; otherwise every question must be present and
// correct. Legacy challenges grade the single raw answer.
func ValidateAnswer(scheme AnswerScheme, answers models.AnswerMap, questionKey string) bool {
	if scheme.Kind == SchemeStructured {
		if questionKey != "" {
			submitted, present := answers[questionKey]
			if !present {
				return false
			}
			question, found := scheme.QuestionByKey(questionKey)
			if !found || question.CorrectAnswer == "" {
				return false
			}
			return matchAnswer(question.CorrectAnswer, submitted, question.AnswerFormat)
		}

		for _, q := range scheme.Questions {
			submitted, present := answers[questionKeyFor(q)]
			if !present || q.CorrectAnswer == "" {
				return false
			}
			if !matchAnswer(q.CorrectAnswer, submitted, q.AnswerFormat) {
				return false
			}
		}
		return true
	}

	if scheme.CorrectAnswer == "" {
		return false
	}

	submitted := answers[models.LegacyAnswerKey]
	return matchLegacy(scheme, submitted)
}

func questionKeyFor(q models.Question) string {
	return questionKey(q.ID)
}

// matchAnswer compares one structured answer under its declared format
func matchAnswer(correct, submitted, format string) bool {
	correct = strings.TrimSpace(correct)
	submitted = strings.TrimSpace(submitted)

	switch strings.ToLower(format) {
	case "number":
		correctNum, errCorrect := strconv.ParseFloat(correct, 64)
		submittedNum, errSubmitted := strconv.ParseFloat(submitted, 64)
		if errCorrect == nil && errSubmitted == nil {
			return correctNum == submittedNum
		}
		return correct == submitted
	default:
		// flag, text, string and unknown formats all compare
		// case-insensitively
		return strings.EqualFold(correct, submitted)
	}
}

// matchLegacy compares a single raw answer under the challenge-level type
func matchLegacy(scheme AnswerScheme, submitted string) bool {
	correct := strings.TrimSpace(scheme.CorrectAnswer)
	submitted = strings.TrimSpace(submitted)

	switch scheme.AnswerType {
	case AnswerTypeFlag:
		return strings.EqualFold(correct, submitted)
	case AnswerTypeText:
		if scheme.ValidationRegex != "" {
			// Anchored at the start, case-insensitive
			pattern, err := regexp.Compile("(?i)^(?:" + scheme.ValidationRegex + ")")
			if err != nil {
				return false
			}
			return pattern.MatchString(submitted)
		}
		return strings.EqualFold(correct, submitted)
	case AnswerTypeMultipleChoice:
		return correct == submitted
	default:
		return correct == submitted
	}
}
