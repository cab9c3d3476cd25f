package predictive

import (
	"testing"

	"BuildPulse/internal/domain/models"
)

func TestPredictBudgetOverrunMidProject(t *testing.T) {
	got := PredictBudgetOverrun(models.BudgetSnapshot{Budget: 100000, ActualCost: 60000, CompletionPct: 0.5})
	if got.PredictedFinalCost != 120000 {
		t.Fatalf("predicted final cost = %v, want 120000", got.PredictedFinalCost)
	}
	if got.Variance != 20000 {
		t.Fatalf("variance = %v, want 20000", got.Variance)
	}
	if got.VariancePct != 20 {
		t.Fatalf("variance pct = %v, want 20", got.VariancePct)
	}
	// exactly 20% falls outside the <20 high band
	if got.Risk != "critical" {
		t.Fatalf("risk = %q, want critical", got.Risk)
	}
}

func TestPredictBudgetOverrunCompleteProject(t *testing.T) {
	got := PredictBudgetOverrun(models.BudgetSnapshot{Budget: 500000, ActualCost: 480000, CompletionPct: 1})
	if got.PredictedFinalCost != 480000 {
		t.Fatalf("at 100%% complete predicted = %v, want actual cost 480000", got.PredictedFinalCost)
	}
	if got.Risk != "low" {
		t.Fatalf("risk = %q, want low", got.Risk)
	}
}

func TestPredictBudgetOverrunNeverBelowActual(t *testing.T) {
	for _, pct := range []float64{0.01, 0.1, 0.25, 0.5, 0.75, 0.99} {
		got := PredictBudgetOverrun(models.BudgetSnapshot{Budget: 1000000, ActualCost: 250000, CompletionPct: pct})
		if got.PredictedFinalCost < 250000 {
			t.Fatalf("completion %v: predicted %v below actual cost", pct, got.PredictedFinalCost)
		}
	}
}

func TestPredictBudgetOverrunZeroCompletionFloor(t *testing.T) {
	got := PredictBudgetOverrun(models.BudgetSnapshot{Budget: 100000, ActualCost: 1000, CompletionPct: 0})
	// floor at 0.01: 1000 + (1000/0.01)*1 = 101000
	if got.PredictedFinalCost != 101000 {
		t.Fatalf("predicted = %v, want 101000", got.PredictedFinalCost)
	}
}

func TestPredictBudgetOverrunZeroBudget(t *testing.T) {
	got := PredictBudgetOverrun(models.BudgetSnapshot{Budget: 0, ActualCost: 60000, CompletionPct: 0.5})
	if got.VariancePct != 0 {
		t.Fatalf("zero budget variance pct = %v, want 0", got.VariancePct)
	}
	if got.Risk != "low" {
		t.Fatalf("risk = %q, want low", got.Risk)
	}
}

func TestPredictBudgetOverrunRiskBands(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, "low"}, {4.99, "low"}, {5, "medium"}, {9.99, "medium"},
		{10, "high"}, {19.99, "high"}, {20, "critical"}, {-20, "critical"},
	}
	for _, c := range cases {
		if got := overrunRisk(c.pct); got != c.want {
			t.Fatalf("overrunRisk(%v) = %q, want %q", c.pct, got, c.want)
		}
	}
}

func TestPredictBudgetOverrunIdempotent(t *testing.T) {
	in := models.BudgetSnapshot{Budget: 480000000, ActualCost: 168000000, CompletionPct: 0.35}
	a := PredictBudgetOverrun(in)
	b := PredictBudgetOverrun(in)
	if a != b {
		t.Fatalf("same input produced different output: %+v vs %+v", a, b)
	}
}
