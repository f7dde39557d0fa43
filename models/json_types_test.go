package models

import "testing"

func TestParseAnswerMap(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantMap   AnswerMap
		wantIsMap bool
	}{
		{
			"json object",
			`{"question_1": "443", "question_2": "CTF{x}"}`,
			AnswerMap{"question_1": "443", "question_2": "CTF{x}"},
			true,
		},
		{
			"plain string falls back to legacy key",
			"CTF{plain}",
			AnswerMap{LegacyAnswerKey: "CTF{plain}"},
			false,
		},
		{
			"json array falls back to legacy key",
			`["a", "b"]`,
			AnswerMap{LegacyAnswerKey: `["a", "b"]`},
			false,
		},
		{
			"empty object",
			`{}`,
			AnswerMap{},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isMap := ParseAnswerMap(tt.raw)
			if isMap != tt.wantIsMap {
				t.Errorf("ParseAnswerMap(%q) isMap = %v, want %v", tt.raw, isMap, tt.wantIsMap)
			}
			if len(got) != len(tt.wantMap) {
				t.Fatalf("ParseAnswerMap(%q) = %v, want %v", tt.raw, got, tt.wantMap)
			}
			for key, want := range tt.wantMap {
				if got[key] != want {
					t.Errorf("ParseAnswerMap(%q)[%q] = %q, want %q", tt.raw, key, got[key], want)
				}
			}
		})
	}
}

func TestAnswerMapMerge(t *testing.T) {
	existing := AnswerMap{"question_1": "443"}
	merged := existing.Merge(AnswerMap{
		"question_1": "80",
		"question_2": "TLS",
	})

	if merged["question_1"] != "443" {
		t.Errorf("existing answer overwritten: got %q, want %q", merged["question_1"], "443")
	}
	if merged["question_2"] != "TLS" {
		t.Errorf("new answer not merged: got %q", merged["question_2"])
	}
	if merged.AnsweredCount() != 2 {
		t.Errorf("AnsweredCount = %d, want 2", merged.AnsweredCount())
	}
}

func TestAnswerMapMergeNilReceiver(t *testing.T) {
	var empty AnswerMap
	merged := empty.Merge(AnswerMap{"question_1": "443"})
	if merged.AnsweredCount() != 1 || merged["question_1"] != "443" {
		t.Errorf("merge into nil map = %v", merged)
	}
}
