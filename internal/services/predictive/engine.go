package predictive

import (
	domsvc "BuildPulse/internal/domain/service"
	"BuildPulse/internal/domain/models"
)

// Engine satisfies the domain analysis interfaces by delegating to the pure
// package-level functions. It holds no state and is safe for concurrent use.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

func (Engine) PredictBudgetOverrun(s models.BudgetSnapshot) models.OverrunForecast {
	return PredictBudgetOverrun(s)
}

func (Engine) ForecastCashFlow(in models.CashFlowForecastInput) []models.CashFlowPeriod {
	return ForecastCashFlow(in)
}

func (Engine) CalculateSafetyRiskScore(in models.SafetyRiskInput) models.SafetyRiskScore {
	return CalculateSafetyRiskScore(in)
}

func (Engine) ScoreVendorPerformance(in models.VendorPerformanceInput) models.VendorScore {
	return ScoreVendorPerformance(in)
}

func (Engine) PredictEquipmentFailure(in models.EquipmentFailureInput) models.EquipmentFailureForecast {
	return PredictEquipmentFailure(in)
}

func (Engine) DetectAnomalies(in models.AnomalyDetectionInput) []models.AlertItem {
	return DetectAnomalies(in)
}

func (Engine) CalculateBidWinProbability(in models.BidWinProbabilityInput) models.BidWinEstimate {
	return CalculateBidWinProbability(in)
}

func (Engine) AnalyzeChangeOrderImpact(in models.ChangeOrderImpactInput) models.ChangeOrderImpact {
	return AnalyzeChangeOrderImpact(in)
}

var _ domsvc.Engine = (*Engine)(nil)
