package models

import (
	"testing"
	"time"
)

func TestPasswordResetIsValid(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name  string
		reset PasswordReset
		want  bool
	}{
		{"fresh token", PasswordReset{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired token", PasswordReset{ExpiresAt: now.Add(-time.Minute)}, false},
		{"used token", PasswordReset{ExpiresAt: now.Add(time.Hour), Used: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reset.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateResetToken(t *testing.T) {
	first, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	if len(first) < 40 {
		t.Errorf("token too short: %d characters", len(first))
	}

	second, err := GenerateResetToken()
	if err != nil {
		t.Fatalf("GenerateResetToken() error = %v", err)
	}
	if first == second {
		t.Error("consecutive tokens should differ")
	}
}
