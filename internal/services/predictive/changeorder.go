package predictive

import "BuildPulse/internal/domain/models"

// Cumulative change-order percentage thresholds for the recommendation
// cascade, and the schedule-impact day count that escalates on its own.
const (
	coRebaselinePct     = 25
	coMonitorPct        = 15
	coReviewPct         = 10
	coScheduleFocusDays = 14
)

// Change-order recommendation advisories.
const (
	CORecommendRebaseline = "Cumulative change orders exceed 25% of the original contract. Re-baseline the project budget and schedule."
	CORecommendMonitor    = "Cumulative change orders exceed 15% of the original contract. Monitor closely and brief ownership."
	CORecommendReview     = "Cumulative change orders exceed 10% of the original contract. Review root causes before approving."
	CORecommendSchedule   = "Schedule impact exceeds two weeks. Evaluate critical path and resequencing options before approval."
	CORecommendProceed    = "Proceed with standard approval workflow."
)

// AnalyzeChangeOrderImpact projects the budget, schedule and margin effect
// of approving a proposed change order.
func AnalyzeChangeOrderImpact(in models.ChangeOrderImpactInput) models.ChangeOrderImpact {
	newBudget := in.CurrentBudget + in.ChangeOrderAmount

	completion := in.CompletionPct
	if completion < minCompletion {
		completion = minCompletion
	}
	baseEAC := in.ActualCost + (in.ActualCost/completion)*(1-in.CompletionPct)
	projectedFinalCost := baseEAC + in.ChangeOrderAmount

	criticalPath := in.ScheduleImpactDays > 5 ||
		(in.ScheduleImpactDays > 0 && in.CompletionPct > 0.5)

	marginBefore := marginPct(in.CurrentBudget, baseEAC)
	marginAfter := marginPct(newBudget, projectedFinalCost)

	cumulativeCOPct := 0.0
	if in.OriginalContractValue > 0 {
		cumulativeCOPct = (in.PriorChangeOrderTotal + in.ChangeOrderAmount) / in.OriginalContractValue * 100
	}

	return models.ChangeOrderImpact{
		NewBudget:            Round2(newBudget),
		ProjectedFinalCost:   Round2(projectedFinalCost),
		CriticalPathAffected: criticalPath,
		MarginBeforePct:      Round2(marginBefore),
		MarginAfterPct:       Round2(marginAfter),
		CumulativeCOPct:      Round2(cumulativeCOPct),
		Recommendation:       coRecommendation(cumulativeCOPct, in.ScheduleImpactDays),
	}
}

func marginPct(budget, cost float64) float64 {
	if budget <= 0 {
		return 0
	}
	return (budget - cost) / budget * 100
}

func coRecommendation(cumulativeCOPct float64, scheduleImpactDays int) string {
	switch {
	case cumulativeCOPct > coRebaselinePct:
		return CORecommendRebaseline
	case cumulativeCOPct > coMonitorPct:
		return CORecommendMonitor
	case cumulativeCOPct > coReviewPct:
		return CORecommendReview
	case scheduleImpactDays > coScheduleFocusDays:
		return CORecommendSchedule
	default:
		return CORecommendProceed
	}
}
