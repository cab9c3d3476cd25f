package service

import "BuildPulse/internal/domain/models"

// The predictive engine is pure and synchronous: snapshot in, result out.
// No context parameters because no call blocks or performs I/O.

// OverrunPredictor extrapolates a project's estimate-at-completion.
type OverrunPredictor interface {
	PredictBudgetOverrun(s models.BudgetSnapshot) models.OverrunForecast
}

// CashFlowForecaster projects the 30/60/90-day cash position.
type CashFlowForecaster interface {
	ForecastCashFlow(in models.CashFlowForecastInput) []models.CashFlowPeriod
}

// SafetyRiskScorer computes the composite 0-100 safety risk score.
type SafetyRiskScorer interface {
	CalculateSafetyRiskScore(in models.SafetyRiskInput) models.SafetyRiskScore
}

// VendorScorer grades vendor performance 0-100.
type VendorScorer interface {
	ScoreVendorPerformance(in models.VendorPerformanceInput) models.VendorScore
}

// EquipmentFailurePredictor estimates failure probability and service timing.
type EquipmentFailurePredictor interface {
	PredictEquipmentFailure(in models.EquipmentFailureInput) models.EquipmentFailureForecast
}

// AnomalyDetector emits a severity-ranked alert list from raw records.
type AnomalyDetector interface {
	DetectAnomalies(in models.AnomalyDetectionInput) []models.AlertItem
}

// BidWinEstimator adjusts a historical win rate by bid signals.
type BidWinEstimator interface {
	CalculateBidWinProbability(in models.BidWinProbabilityInput) models.BidWinEstimate
}

// ChangeOrderAnalyzer projects the impact of a proposed change order.
type ChangeOrderAnalyzer interface {
	AnalyzeChangeOrderImpact(in models.ChangeOrderImpactInput) models.ChangeOrderImpact
}

// Engine is the full analysis surface, one method per analysis.
type Engine interface {
	OverrunPredictor
	CashFlowForecaster
	SafetyRiskScorer
	VendorScorer
	EquipmentFailurePredictor
	AnomalyDetector
	BidWinEstimator
	ChangeOrderAnalyzer
}
