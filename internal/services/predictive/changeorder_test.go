package predictive

import (
	"testing"

	"BuildPulse/internal/domain/models"
)

func TestChangeOrderImpactBasics(t *testing.T) {
	got := AnalyzeChangeOrderImpact(models.ChangeOrderImpactInput{
		ChangeOrderAmount:     50000,
		CurrentBudget:         1000000,
		ActualCost:            400000,
		CompletionPct:         0.5,
		ScheduleImpactDays:    3,
		PriorChangeOrderTotal: 20000,
		OriginalContractValue: 1000000,
	})
	if got.NewBudget != 1050000 {
		t.Fatalf("new budget = %v, want 1050000", got.NewBudget)
	}
	// EAC 800000 plus the CO amount
	if got.ProjectedFinalCost != 850000 {
		t.Fatalf("projected final cost = %v, want 850000", got.ProjectedFinalCost)
	}
	if got.MarginBeforePct != 20 {
		t.Fatalf("margin before = %v, want 20", got.MarginBeforePct)
	}
	// (1050000 - 850000) / 1050000
	if got.MarginAfterPct != 19.05 {
		t.Fatalf("margin after = %v, want 19.05", got.MarginAfterPct)
	}
	if got.CumulativeCOPct != 7 {
		t.Fatalf("cumulative CO pct = %v, want 7", got.CumulativeCOPct)
	}
	if got.Recommendation != CORecommendProceed {
		t.Fatalf("recommendation = %q, want standard approval", got.Recommendation)
	}
}

func TestChangeOrderCriticalPath(t *testing.T) {
	base := models.ChangeOrderImpactInput{
		ChangeOrderAmount:     10000,
		CurrentBudget:         500000,
		ActualCost:            100000,
		OriginalContractValue: 500000,
	}

	early := base
	early.CompletionPct = 0.2
	early.ScheduleImpactDays = 3
	if AnalyzeChangeOrderImpact(early).CriticalPathAffected {
		t.Fatalf("3 days early in the project should not hit the critical path")
	}

	late := base
	late.CompletionPct = 0.6
	late.ScheduleImpactDays = 3
	if !AnalyzeChangeOrderImpact(late).CriticalPathAffected {
		t.Fatalf("any slip past 50%% complete should hit the critical path")
	}

	long := base
	long.CompletionPct = 0.2
	long.ScheduleImpactDays = 6
	if !AnalyzeChangeOrderImpact(long).CriticalPathAffected {
		t.Fatalf("slips over 5 days should hit the critical path regardless of progress")
	}
}

func TestChangeOrderRecommendationCascade(t *testing.T) {
	mk := func(amount float64, scheduleDays int) models.ChangeOrderImpactInput {
		return models.ChangeOrderImpactInput{
			ChangeOrderAmount:     amount,
			CurrentBudget:         1000000,
			ActualCost:            200000,
			CompletionPct:         0.3,
			ScheduleImpactDays:    scheduleDays,
			OriginalContractValue: 1000000,
		}
	}
	cases := []struct {
		in   models.ChangeOrderImpactInput
		want string
	}{
		{mk(300000, 0), CORecommendRebaseline}, // 30%
		{mk(200000, 0), CORecommendMonitor},    // 20%
		{mk(120000, 0), CORecommendReview},     // 12%
		{mk(50000, 20), CORecommendSchedule},   // 5%, 20 days
		{mk(50000, 10), CORecommendProceed},
	}
	for i, c := range cases {
		got := AnalyzeChangeOrderImpact(c.in)
		if got.Recommendation != c.want {
			t.Fatalf("case %d: recommendation = %q, want %q", i, got.Recommendation, c.want)
		}
	}
}

func TestChangeOrderZeroContractValue(t *testing.T) {
	got := AnalyzeChangeOrderImpact(models.ChangeOrderImpactInput{
		ChangeOrderAmount: 50000,
		CurrentBudget:     100000,
		ActualCost:        10000,
		CompletionPct:     0.1,
	})
	if got.CumulativeCOPct != 0 {
		t.Fatalf("cumulative CO pct = %v, want 0 with no contract value", got.CumulativeCOPct)
	}
}
