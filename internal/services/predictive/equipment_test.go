package predictive

import (
	"testing"

	"BuildPulse/internal/domain/models"
)

func TestPredictEquipmentFailureCriticallyOverdue(t *testing.T) {
	got := PredictEquipmentFailure(models.EquipmentFailureInput{
		AgeMonths:                   60,
		UsageHours:                  5000,
		MaintenanceCount:            5,
		DaysSinceLastService:        400,
		ExpectedServiceIntervalDays: 180,
	})
	// age .5*.20 + usage .5*.20 + overdue capped at 2 -> .35 + maintenance .6*.25
	if got.FailureProbability != 0.70 {
		t.Fatalf("probability = %v, want 0.70", got.FailureProbability)
	}
	if got.Risk != "high" {
		t.Fatalf("risk = %q, want high", got.Risk)
	}
	if got.DaysUntilRecommendedService != 0 {
		t.Fatalf("days until service = %d, want 0", got.DaysUntilRecommendedService)
	}
	if got.Recommendation != RecommendImmediate {
		t.Fatalf("recommendation = %q, want critically-overdue message", got.Recommendation)
	}
}

func TestPredictEquipmentFailureNewMachine(t *testing.T) {
	got := PredictEquipmentFailure(models.EquipmentFailureInput{
		AgeMonths:                   0,
		UsageHours:                  0,
		MaintenanceCount:            0,
		DaysSinceLastService:        0,
		ExpectedServiceIntervalDays: 180,
	})
	// only the no-history maintenance factor contributes: 1.0*.25
	if got.FailureProbability != 0.25 {
		t.Fatalf("probability = %v, want 0.25", got.FailureProbability)
	}
	if got.Risk != "low" {
		t.Fatalf("risk = %q, want low", got.Risk)
	}
	if got.DaysUntilRecommendedService != 180 {
		t.Fatalf("days until service = %d, want 180", got.DaysUntilRecommendedService)
	}
	if got.Recommendation != RecommendRoutine {
		t.Fatalf("recommendation = %q, want routine message", got.Recommendation)
	}
}

func TestPredictEquipmentFailureRecommendationCascade(t *testing.T) {
	base := models.EquipmentFailureInput{
		AgeMonths:                   12,
		UsageHours:                  1000,
		MaintenanceCount:            8,
		ExpectedServiceIntervalDays: 100,
	}
	cases := []struct {
		days int
		want string
	}{
		{160, RecommendImmediate}, // ratio 1.6
		{120, RecommendWithin7},   // ratio 1.2
		{90, RecommendWithin14},   // ratio 0.9
		{10, RecommendRoutine},
	}
	for _, c := range cases {
		in := base
		in.DaysSinceLastService = c.days
		got := PredictEquipmentFailure(in)
		if got.Recommendation != c.want {
			t.Fatalf("days=%d recommendation = %q, want %q", c.days, got.Recommendation, c.want)
		}
	}
}

func TestPredictEquipmentFailurePreventiveInspection(t *testing.T) {
	got := PredictEquipmentFailure(models.EquipmentFailureInput{
		AgeMonths:                   120,
		UsageHours:                  10000,
		MaintenanceCount:            0,
		DaysSinceLastService:        50,
		ExpectedServiceIntervalDays: 100,
	})
	// not overdue, but age/usage/history push probability past 0.5
	if got.FailureProbability <= 0.5 {
		t.Fatalf("probability = %v, want > 0.5", got.FailureProbability)
	}
	if got.Recommendation != RecommendPreventive {
		t.Fatalf("recommendation = %q, want preventive message", got.Recommendation)
	}
}

func TestPredictEquipmentFailureProbabilityBounds(t *testing.T) {
	extremes := []models.EquipmentFailureInput{
		{AgeMonths: 1000, UsageHours: 1e6, MaintenanceCount: 0, DaysSinceLastService: 10000, ExpectedServiceIntervalDays: 1},
		{AgeMonths: -10, UsageHours: -500, MaintenanceCount: 100, DaysSinceLastService: -30, ExpectedServiceIntervalDays: 0},
	}
	for i, in := range extremes {
		got := PredictEquipmentFailure(in)
		if got.FailureProbability < 0 || got.FailureProbability > 1 {
			t.Fatalf("case %d: probability %v outside [0,1]", i, got.FailureProbability)
		}
	}
}
