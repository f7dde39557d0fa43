package services

import "testing"

func floatPtr(f float64) *float64 { return &f }
func intPtr(n int) *int           { return &n }

func TestCalculatePoints(t *testing.T) {
	tests := []struct {
		name           string
		basePoints     int
		hintsUsed      int
		completionTime *float64
		timeLimit      *int
		want           int
	}{
		{"no adjustments", 100, 0, nil, nil, 100},
		{"one hint", 100, 1, nil, nil, 90},
		{"two hints", 100, 2, nil, nil, 80},
		{"penalty capped at 30 percent", 100, 5, nil, nil, 70},
		{"cap scales with base", 60, 5, nil, nil, 42},
		{"speed bonus at half the limit", 100, 0, floatPtr(30), intPtr(60), 120},
		{"no bonus past half the limit", 100, 0, floatPtr(31), intPtr(60), 100},
		{"bonus applies after penalty", 100, 1, floatPtr(10), intPtr(60), 108},
		{"no bonus without time limit", 100, 0, floatPtr(5), nil, 100},
		{"no bonus without completion time", 100, 0, nil, intPtr(60), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculatePoints(tt.basePoints, tt.hintsUsed, tt.completionTime, tt.timeLimit)
			if got != tt.want {
				t.Errorf("CalculatePoints(%d, %d) = %d, want %d", tt.basePoints, tt.hintsUsed, got, tt.want)
			}
		})
	}
}
