package usecase

import (
	"context"
	"testing"
	"time"

	"BuildPulse/internal/domain/models"
	"BuildPulse/internal/services/predictive"
	applogger "BuildPulse/pkg/logger"
)

type fakePublisher struct {
	batches [][]models.AlertItem
}

func (p *fakePublisher) PublishAlerts(ctx context.Context, alerts []models.AlertItem) error {
	p.batches = append(p.batches, alerts)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type fakeBroadcaster struct {
	batches [][]models.AlertItem
}

func (b *fakeBroadcaster) Broadcast(alerts []models.AlertItem) {
	b.batches = append(b.batches, alerts)
}

func newTestMonitor(store *fakeStore, pub *fakePublisher, bc *fakeBroadcaster) *AlertMonitor {
	// Avoid wrapping a typed nil *fakeBroadcaster in the Broadcaster
	// interface, which would defeat the monitor's nil check.
	var b Broadcaster
	if bc != nil {
		b = bc
	}
	return NewAlertMonitor(store, predictive.NewEngine(), pub, b, nil, nil, applogger.Nop(), time.Hour)
}

func TestSweepPublishesAllAlertsFirstRun(t *testing.T) {
	store := &fakeStore{anomalies: models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-2001", VendorName: "Ridge Steel", Amount: 75000},
		},
		OverdueTasks: []models.OverdueTask{
			{ID: "t-1", Name: "Pour slab B2", ProjectName: "Harbor Tower", DaysOverdue: 12},
		},
	}}
	pub := &fakePublisher{}
	bc := &fakeBroadcaster{}
	m := newTestMonitor(store, pub, bc)

	m.Sweep(context.Background())

	if len(pub.batches) != 1 || len(pub.batches[0]) != 2 {
		t.Fatalf("published %+v, want one batch of 2", pub.batches)
	}
	if len(bc.batches) != 1 || len(bc.batches[0]) != 2 {
		t.Fatalf("broadcast %+v, want one batch of 2", bc.batches)
	}
	if got := m.CurrentAlerts(); len(got) != 2 {
		t.Fatalf("current alerts = %d, want 2", len(got))
	}
}

func TestSweepSuppressesUnchangedAlerts(t *testing.T) {
	store := &fakeStore{anomalies: models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-2001", VendorName: "Ridge Steel", Amount: 75000},
		},
	}}
	pub := &fakePublisher{}
	m := newTestMonitor(store, pub, nil)

	m.Sweep(context.Background())
	m.Sweep(context.Background())

	if len(pub.batches) != 1 {
		t.Fatalf("published %d batches, want 1 (second sweep unchanged)", len(pub.batches))
	}
}

func TestSweepPublishesOnlyNewAlerts(t *testing.T) {
	store := &fakeStore{anomalies: models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-2001", VendorName: "Ridge Steel", Amount: 75000},
		},
	}}
	pub := &fakePublisher{}
	m := newTestMonitor(store, pub, nil)

	m.Sweep(context.Background())

	store.anomalies.OverdueRFIs = []models.OverdueRFI{
		{ID: "rfi-9", Number: "RFI-009", Subject: "Curtain wall anchors", DaysPending: 21},
	}
	m.Sweep(context.Background())

	if len(pub.batches) != 2 {
		t.Fatalf("published %d batches, want 2", len(pub.batches))
	}
	fresh := pub.batches[1]
	if len(fresh) != 1 || fresh[0].Category != models.CategoryProject {
		t.Fatalf("second batch = %+v, want only the new RFI alert", fresh)
	}
}

func TestSweepRepublishesResolvedThenReturningAlert(t *testing.T) {
	store := &fakeStore{anomalies: models.AnomalyDetectionInput{
		UnlinkedInvoices: []models.UnlinkedInvoice{
			{ID: "inv-1", Number: "INV-2001", VendorName: "Ridge Steel", Amount: 75000},
		},
	}}
	pub := &fakePublisher{}
	m := newTestMonitor(store, pub, nil)

	m.Sweep(context.Background())

	saved := store.anomalies
	store.anomalies = models.AnomalyDetectionInput{}
	m.Sweep(context.Background())

	store.anomalies = saved
	m.Sweep(context.Background())

	if len(pub.batches) != 2 {
		t.Fatalf("published %d batches, want 2 (alert re-raised after resolution)", len(pub.batches))
	}
}

func TestStartStop(t *testing.T) {
	store := &fakeStore{}
	m := newTestMonitor(store, &fakePublisher{}, nil)

	m.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := m.Stop(ctx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
