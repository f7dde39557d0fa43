package models

import (
	"testing"
	"time"
)

func TestUserProgressStart(t *testing.T) {
	now := time.Now().UTC()

	p := UserProgress{Status: StatusNotStarted}
	p.Start(now)
	if p.Status != StatusInProgress {
		t.Errorf("Status = %q, want %q", p.Status, StatusInProgress)
	}
	if p.StartedAt == nil || !p.StartedAt.Equal(now) {
		t.Errorf("StartedAt = %v, want %v", p.StartedAt, now)
	}

	// A second start only refreshes last access
	later := now.Add(time.Hour)
	p.Start(later)
	if !p.StartedAt.Equal(now) {
		t.Errorf("StartedAt changed on restart: %v", p.StartedAt)
	}
	if !p.LastAccessed.Equal(later) {
		t.Errorf("LastAccessed = %v, want %v", p.LastAccessed, later)
	}
}

func TestUserProgressComplete(t *testing.T) {
	now := time.Now().UTC()
	limit := 60

	tests := []struct {
		name           string
		attempts       int
		firstAttempt   bool
		completionTime *float64
		wantFirst      bool
		wantSpeed      bool
	}{
		{"first attempt fast", 1, true, floatPtr(20), true, true},
		{"first attempt slow", 1, true, floatPtr(45), true, false},
		{"later attempt", 3, false, floatPtr(20), false, true},
		{"no completion time", 1, true, nil, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := UserProgress{Status: StatusInProgress, AttemptsCount: tt.attempts}
			p.Complete(now, tt.firstAttempt, tt.completionTime, &limit)

			if p.Status != StatusCompleted {
				t.Errorf("Status = %q, want %q", p.Status, StatusCompleted)
			}
			if p.FirstAttemptSuccess != tt.wantFirst {
				t.Errorf("FirstAttemptSuccess = %v, want %v", p.FirstAttemptSuccess, tt.wantFirst)
			}
			if p.SpeedBonusEarned != tt.wantSpeed {
				t.Errorf("SpeedBonusEarned = %v, want %v", p.SpeedBonusEarned, tt.wantSpeed)
			}
		})
	}
}

func TestUserProgressUseHint(t *testing.T) {
	now := time.Now().UTC()
	p := UserProgress{}
	p.UseHint(now)
	p.UseHint(now)
	if p.HintsUsed != 2 {
		t.Errorf("HintsUsed = %d, want 2", p.HintsUsed)
	}
}

func floatPtr(f float64) *float64 { return &f }
