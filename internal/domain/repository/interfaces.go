package repository

import (
	"context"

	"BuildPulse/internal/domain/models"
)

// SnapshotStore assembles point-in-time analysis inputs from the operational
// store. Each getter returns one pre-filtered, single-tenant snapshot; the
// engine itself never touches storage.
type SnapshotStore interface {
	GetBudgetSnapshot(ctx context.Context, projectID string) (models.BudgetSnapshot, error)
	GetCashFlowInput(ctx context.Context) (models.CashFlowForecastInput, error)
	GetSafetyInput(ctx context.Context) (models.SafetyRiskInput, error)
	GetVendorInput(ctx context.Context, vendorID string) (models.VendorPerformanceInput, error)
	GetEquipmentInput(ctx context.Context, equipmentID string) (models.EquipmentFailureInput, error)
	GetAnomalyInput(ctx context.Context) (models.AnomalyDetectionInput, error)
	Health(ctx context.Context) error
	Close() error
}

// AlertPublisher delivers detected alerts to downstream consumers.
type AlertPublisher interface {
	PublishAlerts(ctx context.Context, alerts []models.AlertItem) error
	Close() error
}

// Metrics records operational counters for the analytics service.
type Metrics interface {
	RecordAnalysis(analysis string, seconds float64)
	RecordAlertsPublished(severity string, n int)
	RecordError(kind string)
	RecordCache(analysis string, hit bool)
}
