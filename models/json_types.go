package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Question is one gradable sub-question of a structured challenge.
// The stored list order is the grading order.
type Question struct {
	ID            int    `json:"id"`
	Question      string `json:"question"`
	CorrectAnswer string `json:"correct_answer"`
	AnswerFormat  string `json:"answer_format"`
}

// QuestionList is a JSON column holding a challenge's ordered questions
type QuestionList []Question

// AnswerMap is a JSON column holding submitted answers keyed by
// "question_<id>". Legacy single answers live under the "answer" key.
type AnswerMap map[string]string

// StringList is a JSON column for hints and suggested tools
type StringList []string

// Attachment describes one uploaded challenge file
type Attachment struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Filename   string `json:"filename"`
	Size       string `json:"size"`
	Password   string `json:"password,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}

// AttachmentList is a JSON column for challenge file attachments
type AttachmentList []Attachment

func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func jsonScan(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	switch data := value.(type) {
	case []byte:
		return json.Unmarshal(data, dest)
	case string:
		return json.Unmarshal([]byte(data), dest)
	default:
		return fmt.Errorf("unsupported type for JSON column: %T", value)
	}
}

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return nil, nil
	}
	return jsonValue(q)
}

func (q *QuestionList) Scan(value interface{}) error { return jsonScan(q, value) }

func (a AnswerMap) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	return jsonValue(a)
}

func (a *AnswerMap) Scan(value interface{}) error { return jsonScan(a, value) }

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return jsonValue(s)
}

func (s *StringList) Scan(value interface{}) error { return jsonScan(s, value) }

func (l AttachmentList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return jsonValue(l)
}

func (l *AttachmentList) Scan(value interface{}) error { return jsonScan(l, value) }

// LegacyAnswerKey is where a raw (non per-question) submission is stored
// inside an AnswerMap.
const LegacyAnswerKey = "answer"

// ParseAnswerMap decodes a submitted answer into an AnswerMap. A payload
// that is not a JSON object is treated as a single legacy answer. The
// second return reports whether the payload was a real per-question map.
func ParseAnswerMap(raw string) (AnswerMap, bool) {
	var m AnswerMap
	if err := json.Unmarshal([]byte(raw), &m); err == nil && m != nil {
		return m, true
	}
	return AnswerMap{LegacyAnswerKey: raw}, false
}

// Merge folds newly answered keys into the map without overwriting keys
// already present, keeping the payload append-only.
func (a AnswerMap) Merge(other AnswerMap) AnswerMap {
	if a == nil {
		a = AnswerMap{}
	}
	for key, answer := range other {
		if _, exists := a[key]; !exists {
			a[key] = answer
		}
	}
	return a
}

// AnsweredCount returns how many distinct question keys the map covers.
func (a AnswerMap) AnsweredCount() int { return len(a) }

// String renders the map as its stored JSON, used in submission payload dumps.
func (a AnswerMap) String() string {
	if a == nil {
		return "{}"
	}
	data, err := json.Marshal(a)
	if err != nil {
		return "{}"
	}
	return string(data)
}
