package predictive

import (
	"reflect"
	"testing"

	"BuildPulse/internal/domain/models"
)

func sampleAnomalyInput() models.AnomalyDetectionInput {
	return models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-2025-0142", VendorName: "Lone Star Concrete", Amount: 62500},
			{ID: "inv-2", Number: "INV-2025-0150", VendorName: "Metro Electric Supply", Amount: 8400},
		},
		BudgetOverruns: []models.BudgetLineUsage{
			{ID: "bl-1", Name: "DFW-T6 Structural Steel", Budget: 12000000, Actual: 12350000},
			{ID: "bl-2", Name: "PBC Interior Finishes", Budget: 4000000, Actual: 3840000},
			{ID: "bl-3", Name: "DFW-T6 Sitework", Budget: 2000000, Actual: 1850000},
		},
		StaleDrafts: []models.StaleDraftEntry{
			{ID: "je-1", Number: "JE-2025-0871", DaysInDraft: 45},
		},
		ExpiringCerts: []models.ExpiringCertification{
			{ID: "cert-1", Name: "OSHA 30", HolderName: "M. Alvarez", DaysUntilExpiry: -3},
			{ID: "cert-2", Name: "Crane Operator", HolderName: "D. Okafor", DaysUntilExpiry: 10},
			{ID: "cert-3", Name: "First Aid/CPR", HolderName: "J. Nguyen", DaysUntilExpiry: 60},
		},
		OverdueRFIs: []models.OverdueRFI{
			{ID: "rfi-1", Number: "RFI-214", Subject: "Curtain wall anchor detail", DaysPending: 33},
		},
		PendingChangeOrders: []models.PendingChangeOrder{
			{ID: "co-1", Number: "CO-017", Amount: 145000, DaysPending: 9},
			{ID: "co-2", Number: "CO-018", Amount: 22000, DaysPending: 18},
		},
		OverdueEquipment: []models.OverdueEquipment{
			{ID: "eq-1", Name: "Tower Crane TC-2", DaysOverdue: 12},
		},
		OverdueTasks: []models.OverdueTask{
			{ID: "task-1", Name: "Pour level 4 deck", ProjectName: "Pinnacle Bay Condominiums", DaysOverdue: 21},
		},
	}
}

func TestDetectAnomaliesOnePerRecord(t *testing.T) {
	in := sampleAnomalyInput()
	got := DetectAnomalies(in)
	want := len(in.UnlinkedInvoices) + len(in.BudgetOverruns) + len(in.StaleDrafts) +
		len(in.ExpiringCerts) + len(in.OverdueRFIs) + len(in.PendingChangeOrders) +
		len(in.OverdueEquipment) + len(in.OverdueTasks)
	if len(got) != want {
		t.Fatalf("alerts = %d, want %d", len(got), want)
	}
}

func TestDetectAnomaliesSeverityOrdering(t *testing.T) {
	got := DetectAnomalies(sampleAnomalyInput())
	rank := map[string]int{models.SeverityCritical: 0, models.SeverityWarning: 1, models.SeverityInfo: 2}
	for i := 1; i < len(got); i++ {
		if rank[got[i].Severity] < rank[got[i-1].Severity] {
			t.Fatalf("alert %d (%s) precedes a lower-severity alert", i, got[i].Severity)
		}
	}
}

func TestDetectAnomaliesDeterministicIDs(t *testing.T) {
	a := DetectAnomalies(sampleAnomalyInput())
	b := DetectAnomalies(sampleAnomalyInput())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same snapshot produced different alert lists")
	}
	seen := map[string]bool{}
	for _, alert := range a {
		if alert.ID == "" {
			t.Fatalf("alert %q has empty id", alert.Title)
		}
		if seen[alert.ID] {
			t.Fatalf("duplicate alert id %q", alert.ID)
		}
		seen[alert.ID] = true
	}
}

func TestDetectAnomaliesSeverityRules(t *testing.T) {
	bySeverity := func(in models.AnomalyDetectionInput) string {
		got := DetectAnomalies(in)
		if len(got) != 1 {
			t.Fatalf("expected 1 alert, got %d", len(got))
		}
		return got[0].Severity
	}

	// invoice amount boundary: strictly greater than $50,000 escalates
	if s := bySeverity(models.AnomalyDetectionInput{UnlinkedInvoices: []models.UnlinkedInvoice{{Number: "A", Amount: 50000}}}); s != models.SeverityWarning {
		t.Fatalf("invoice at 50000 = %s, want warning", s)
	}
	if s := bySeverity(models.AnomalyDetectionInput{UnlinkedInvoices: []models.UnlinkedInvoice{{Number: "A", Amount: 50000.01}}}); s != models.SeverityCritical {
		t.Fatalf("invoice above 50000 = %s, want critical", s)
	}

	// budget usage boundaries: >=100 critical, >=95 warning, else info
	if s := bySeverity(models.AnomalyDetectionInput{BudgetOverruns: []models.BudgetLineUsage{{Name: "L", Budget: 100, Actual: 100}}}); s != models.SeverityCritical {
		t.Fatalf("budget at 100%% = %s, want critical", s)
	}
	if s := bySeverity(models.AnomalyDetectionInput{BudgetOverruns: []models.BudgetLineUsage{{Name: "L", Budget: 100, Actual: 95}}}); s != models.SeverityWarning {
		t.Fatalf("budget at 95%% = %s, want warning", s)
	}
	if s := bySeverity(models.AnomalyDetectionInput{BudgetOverruns: []models.BudgetLineUsage{{Name: "L", Budget: 100, Actual: 92}}}); s != models.SeverityInfo {
		t.Fatalf("budget at 92%% = %s, want info", s)
	}

	// expired certification is critical regardless of margin
	if s := bySeverity(models.AnomalyDetectionInput{ExpiringCerts: []models.ExpiringCertification{{Name: "OSHA 30", HolderName: "X", DaysUntilExpiry: -1}}}); s != models.SeverityCritical {
		t.Fatalf("expired cert = %s, want critical", s)
	}
	if s := bySeverity(models.AnomalyDetectionInput{ExpiringCerts: []models.ExpiringCertification{{Name: "OSHA 30", HolderName: "X", DaysUntilExpiry: 14}}}); s != models.SeverityWarning {
		t.Fatalf("cert at 14 days = %s, want warning", s)
	}

	// change order escalates on amount alone
	if s := bySeverity(models.AnomalyDetectionInput{PendingChangeOrders: []models.PendingChangeOrder{{Number: "CO-1", Amount: 150000, DaysPending: 2}}}); s != models.SeverityCritical {
		t.Fatalf("large pending CO = %s, want critical", s)
	}

	// task overdue boundaries
	if s := bySeverity(models.AnomalyDetectionInput{OverdueTasks: []models.OverdueTask{{Name: "T", DaysOverdue: 15}}}); s != models.SeverityCritical {
		t.Fatalf("task 15 days = %s, want critical", s)
	}
	if s := bySeverity(models.AnomalyDetectionInput{OverdueTasks: []models.OverdueTask{{Name: "T", DaysOverdue: 8}}}); s != models.SeverityWarning {
		t.Fatalf("task 8 days = %s, want warning", s)
	}
}

func TestDetectAnomaliesEmptyInput(t *testing.T) {
	got := DetectAnomalies(models.AnomalyDetectionInput{})
	if len(got) != 0 {
		t.Fatalf("empty input produced %d alerts", len(got))
	}
}

func TestSlug(t *testing.T) {
	cases := []struct{ in, want string }{
		{"INV-2025-0142", "inv-2025-0142"},
		{"Tower Crane TC-2", "tower-crane-tc-2"},
		{"  OSHA 30 / First Aid  ", "osha-30-first-aid"},
		{"M. Alvarez", "m-alvarez"},
	}
	for _, c := range cases {
		if got := Slug(c.in); got != c.want {
			t.Fatalf("Slug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
