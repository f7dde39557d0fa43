package services

// Scoring constants
const (
	hintPenaltyPerUse = 10
	hintPenaltyCapPct = 0.3
	speedBonusFactor  = 1.2
	speedBonusCutoff  = 0.5
)

// CalculatePoints computes the award for a correct submission. Hints cost
// hintPenaltyPerUse points each, capped at 30% of the base and floored at
// half the base. Finishing within half the time limit earns a 20% bonus.
func CalculatePoints(basePoints, hintsUsed int, completionTime *float64, timeLimit *int) int {
	points := basePoints

	if hintsUsed > 0 {
		penalty := float64(hintsUsed * hintPenaltyPerUse)
		if maxPenalty := float64(basePoints) * hintPenaltyCapPct; penalty > maxPenalty {
			penalty = maxPenalty
		}
		points = int(float64(points) - penalty)
		if floor := basePoints / 2; points < floor {
			points = floor
		}
	}

	if completionTime != nil && timeLimit != nil && *timeLimit > 0 &&
		*completionTime <= float64(*timeLimit)*speedBonusCutoff {
		points = int(float64(points) * speedBonusFactor)
	}

	return points
}
