package usecase

import (
	"context"
	"testing"
	"time"

	"BuildPulse/internal/domain/models"
	"BuildPulse/internal/service/cache"
	"BuildPulse/internal/services/predictive"
)

type fakeStore struct {
	budget    models.BudgetSnapshot
	cashflow  models.CashFlowForecastInput
	safety    models.SafetyRiskInput
	vendor    models.VendorPerformanceInput
	equipment models.EquipmentFailureInput
	anomalies models.AnomalyDetectionInput

	budgetCalls  int
	anomalyCalls int
}

func (f *fakeStore) GetBudgetSnapshot(ctx context.Context, projectID string) (models.BudgetSnapshot, error) {
	f.budgetCalls++
	return f.budget, nil
}

func (f *fakeStore) GetCashFlowInput(ctx context.Context) (models.CashFlowForecastInput, error) {
	return f.cashflow, nil
}

func (f *fakeStore) GetSafetyInput(ctx context.Context) (models.SafetyRiskInput, error) {
	return f.safety, nil
}

func (f *fakeStore) GetVendorInput(ctx context.Context, vendorID string) (models.VendorPerformanceInput, error) {
	return f.vendor, nil
}

func (f *fakeStore) GetEquipmentInput(ctx context.Context, equipmentID string) (models.EquipmentFailureInput, error) {
	return f.equipment, nil
}

func (f *fakeStore) GetAnomalyInput(ctx context.Context) (models.AnomalyDetectionInput, error) {
	f.anomalyCalls++
	return f.anomalies, nil
}

func (f *fakeStore) Health(ctx context.Context) error { return nil }
func (f *fakeStore) Close() error                     { return nil }

func newTestInsightService(store *fakeStore, ttl CacheTTLs) *InsightService {
	return NewInsightService(store, predictive.NewEngine(), cache.NewTTLCache(), nil, ttl)
}

func TestProjectOverrunComputes(t *testing.T) {
	store := &fakeStore{budget: models.BudgetSnapshot{Budget: 100000, ActualCost: 60000, CompletionPct: 0.5}}
	svc := newTestInsightService(store, CacheTTLs{})

	got, err := svc.ProjectOverrun(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ProjectOverrun: %v", err)
	}
	if got.PredictedFinalCost != 120000 {
		t.Fatalf("predicted = %v, want 120000", got.PredictedFinalCost)
	}
	if got.Risk != "critical" {
		t.Fatalf("risk = %q, want critical", got.Risk)
	}
}

func TestProjectOverrunCacheHit(t *testing.T) {
	store := &fakeStore{budget: models.BudgetSnapshot{Budget: 100000, ActualCost: 60000, CompletionPct: 0.5}}
	svc := newTestInsightService(store, CacheTTLs{Overrun: time.Minute})

	first, err := svc.ProjectOverrun(context.Background(), "p1")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.ProjectOverrun(context.Background(), "p1")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if store.budgetCalls != 1 {
		t.Fatalf("store hit %d times, want 1", store.budgetCalls)
	}
	if *first != *second {
		t.Fatalf("cached result diverged: %+v vs %+v", first, second)
	}
}

func TestProjectOverrunCacheKeyedByProject(t *testing.T) {
	store := &fakeStore{budget: models.BudgetSnapshot{Budget: 100000, ActualCost: 60000, CompletionPct: 0.5}}
	svc := newTestInsightService(store, CacheTTLs{Overrun: time.Minute})

	if _, err := svc.ProjectOverrun(context.Background(), "p1"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.ProjectOverrun(context.Background(), "p2"); err != nil {
		t.Fatal(err)
	}
	if store.budgetCalls != 2 {
		t.Fatalf("store hit %d times, want 2", store.budgetCalls)
	}
}

func TestAnomaliesFilteredFromSingleCachedRun(t *testing.T) {
	store := &fakeStore{anomalies: models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-1001", VendorName: "Apex Concrete", Amount: 120000},
			{ID: "inv-2", Number: "INV-1002", VendorName: "Apex Concrete", Amount: 900},
		},
		OverdueRFIs: []models.OverdueRFI{
			{ID: "rfi-1", Number: "RFI-004", Subject: "Footing depth", DaysPending: 45},
		},
	}}
	svc := newTestInsightService(store, CacheTTLs{Anomalies: time.Minute})

	all, err := svc.Anomalies(context.Background(), "", "")
	if err != nil {
		t.Fatalf("Anomalies: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d alerts, want 3", len(all))
	}

	critical, err := svc.Anomalies(context.Background(), models.SeverityCritical, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range critical {
		if a.Severity != models.SeverityCritical {
			t.Fatalf("filter leaked severity %q", a.Severity)
		}
	}

	project, err := svc.Anomalies(context.Background(), "", models.CategoryProject)
	if err != nil {
		t.Fatal(err)
	}
	if len(project) != 1 || project[0].Category != models.CategoryProject {
		t.Fatalf("project filter got %+v", project)
	}

	if store.anomalyCalls != 1 {
		t.Fatalf("detection ran %d times, want 1 (filters served from cache)", store.anomalyCalls)
	}
}

func TestBidWinProbabilityPassthrough(t *testing.T) {
	svc := newTestInsightService(&fakeStore{}, CacheTTLs{})

	got := svc.BidWinProbability(models.BidWinProbabilityInput{
		BidAmount:         1100000,
		EstimatedCost:     1000000,
		HistoricalWinRate: 0.40,
		CompetitorCount:   3,
		RelationshipScore: 80,
	})
	if got.Probability <= 0 || got.Probability >= 1 {
		t.Fatalf("probability %v out of range", got.Probability)
	}
	if len(got.Adjustments) != 4 {
		t.Fatalf("got %d adjustments, want 4", len(got.Adjustments))
	}
}

func TestCompanyInsightsAggregates(t *testing.T) {
	score := 92.0
	store := &fakeStore{
		cashflow: models.CashFlowForecastInput{CurrentCash: 50000, MonthlyBurnRate: 10000},
		safety:   models.SafetyRiskInput{ProjectCount: 4, AvgInspectionScore: &score, DaysSinceLastIncident: 400},
	}
	uc := NewCompanyInsightsUseCase(newTestInsightService(store, CacheTTLs{}))

	res, err := uc.GetCompanyInsights(context.Background())
	if err != nil {
		t.Fatalf("GetCompanyInsights: %v", err)
	}
	if len(res.CashFlow) != 3 {
		t.Fatalf("got %d cash flow periods, want 3", len(res.CashFlow))
	}
	if res.Safety == nil {
		t.Fatal("safety missing")
	}
	if res.Errors != nil {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}
