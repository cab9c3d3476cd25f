package predictive

import (
	"testing"

	"BuildPulse/internal/domain/models"
)

func float64p(v float64) *float64 { return &v }

func TestSafetyRiskScoreCleanRecord(t *testing.T) {
	got := CalculateSafetyRiskScore(models.SafetyRiskInput{
		AvgInspectionScore: float64p(100),
		ProjectCount:       4,
	})
	if got.Score != 0 {
		t.Fatalf("clean record score = %v, want 0", got.Score)
	}
	if got.Level != "low" {
		t.Fatalf("level = %q, want low", got.Level)
	}
	if len(got.Factors) != 5 {
		t.Fatalf("factors = %d, want 5", len(got.Factors))
	}
}

func TestSafetyRiskScoreWorstCase(t *testing.T) {
	got := CalculateSafetyRiskScore(models.SafetyRiskInput{
		IncidentCount:         30,
		SevereIncidentCount:   30,
		AvgInspectionScore:    float64p(0),
		CertGapCount:          20,
		DaysSinceLastIncident: 0,
		ProjectCount:          2,
	})
	if got.Score != 100 {
		t.Fatalf("worst case score = %v, want 100", got.Score)
	}
	if got.Level != "critical" {
		t.Fatalf("level = %q, want critical", got.Level)
	}
}

func TestSafetyRiskScoreMonotonic(t *testing.T) {
	base := models.SafetyRiskInput{
		IncidentCount:         2,
		SevereIncidentCount:   0,
		AvgInspectionScore:    float64p(80),
		CertGapCount:          1,
		DaysSinceLastIncident: 100,
		ProjectCount:          3,
	}
	prev := CalculateSafetyRiskScore(base).Score
	for _, n := range []int{4, 6, 8, 12} {
		in := base
		in.IncidentCount = n
		score := CalculateSafetyRiskScore(in).Score
		if score < prev {
			t.Fatalf("score dropped from %v to %v as incidents rose to %d", prev, score, n)
		}
		prev = score
	}

	prev = CalculateSafetyRiskScore(base).Score
	for _, n := range []int{1, 2} {
		in := base
		in.SevereIncidentCount = n
		score := CalculateSafetyRiskScore(in).Score
		if score < prev {
			t.Fatalf("score dropped from %v to %v as severe incidents rose to %d", prev, score, n)
		}
		prev = score
	}

	prev = CalculateSafetyRiskScore(base).Score
	for _, n := range []int{3, 6, 10, 15} {
		in := base
		in.CertGapCount = n
		score := CalculateSafetyRiskScore(in).Score
		if score < prev {
			t.Fatalf("score dropped from %v to %v as cert gaps rose to %d", prev, score, n)
		}
		prev = score
	}
}

func TestSafetyRiskScoreAlwaysInRange(t *testing.T) {
	extremes := []models.SafetyRiskInput{
		{IncidentCount: -5, SevereIncidentCount: -1, CertGapCount: -3, ProjectCount: -2},
		{IncidentCount: 1000, SevereIncidentCount: 2000, AvgInspectionScore: float64p(-50), CertGapCount: 500, ProjectCount: 1},
		{IncidentCount: 1, AvgInspectionScore: float64p(250), DaysSinceLastIncident: 10000, ProjectCount: 0},
	}
	for i, in := range extremes {
		got := CalculateSafetyRiskScore(in)
		if got.Score < 0 || got.Score > 100 {
			t.Fatalf("case %d: score %v outside [0,100]", i, got.Score)
		}
	}
}

func TestSafetyRiskRecencyIgnoredWithoutIncidents(t *testing.T) {
	got := CalculateSafetyRiskScore(models.SafetyRiskInput{
		AvgInspectionScore:    float64p(90),
		DaysSinceLastIncident: 0, // meaningless without incidents
		ProjectCount:          1,
	})
	for _, f := range got.Factors {
		if f.Name == "Incident Recency" && f.Score != 0 {
			t.Fatalf("recency = %v with zero incidents, want 0", f.Score)
		}
	}
}

// Missing inspection data must not read as a zero inspection score.
func TestSafetyRiskMissingInspectionsNeutral(t *testing.T) {
	missing := CalculateSafetyRiskScore(models.SafetyRiskInput{ProjectCount: 1})
	zero := CalculateSafetyRiskScore(models.SafetyRiskInput{AvgInspectionScore: float64p(0), ProjectCount: 1})

	var missingFactor, zeroFactor models.RiskFactor
	for _, f := range missing.Factors {
		if f.Name == "Inspection Scores" {
			missingFactor = f
		}
	}
	for _, f := range zero.Factors {
		if f.Name == "Inspection Scores" {
			zeroFactor = f
		}
	}
	if missingFactor.Score != 50 || missingFactor.Impact != "No inspection data" {
		t.Fatalf("missing inspections factor = %+v, want neutral 50", missingFactor)
	}
	if zeroFactor.Score != 100 {
		t.Fatalf("zero inspection score factor = %v, want 100", zeroFactor.Score)
	}
}

func TestSafetyRiskLevelBands(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{{0, "low"}, {25, "low"}, {26, "medium"}, {50, "medium"}, {51, "high"}, {75, "high"}, {76, "critical"}, {100, "critical"}}
	for _, c := range cases {
		if got := riskLevel(c.score); got != c.want {
			t.Fatalf("riskLevel(%v) = %q, want %q", c.score, got, c.want)
		}
	}
}
