package predictive

import "BuildPulse/internal/domain/models"

// minCompletion floors the completion fraction before it is used as a
// divisor, so near-zero progress does not blow up the extrapolation.
const minCompletion = 0.01

// Variance-percentage bands for the overrun risk tier.
const (
	overrunLowBand    = 5
	overrunMediumBand = 10
	overrunHighBand   = 20
)

// PredictBudgetOverrun extrapolates the estimate-at-completion from current
// spend and percent complete. A zero or negative budget degrades to a
// variance percentage of 0 rather than failing.
func PredictBudgetOverrun(s models.BudgetSnapshot) models.OverrunForecast {
	completion := s.CompletionPct
	if completion < minCompletion {
		completion = minCompletion
	}
	predicted := s.ActualCost + (s.ActualCost/completion)*(1-s.CompletionPct)

	variance := predicted - s.Budget
	variancePct := 0.0
	if s.Budget > 0 {
		variancePct = variance / s.Budget * 100
	}

	return models.OverrunForecast{
		PredictedFinalCost: Round2(predicted),
		Variance:           Round2(variance),
		VariancePct:        Round2(variancePct),
		Risk:               overrunRisk(variancePct),
	}
}

func overrunRisk(variancePct float64) string {
	abs := variancePct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs < overrunLowBand:
		return "low"
	case abs < overrunMediumBand:
		return "medium"
	case abs < overrunHighBand:
		return "high"
	default:
		return "critical"
	}
}
