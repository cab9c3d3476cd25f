package models

// BudgetSnapshot is a point-in-time view of a project's financial position.
// CompletionPct is a fraction in [0,1].
type BudgetSnapshot struct {
	Budget        float64
	ActualCost    float64
	CompletionPct float64
}

// OverrunForecast is the estimate-at-completion projection for a project.
type OverrunForecast struct {
	PredictedFinalCost float64 `json:"predicted_final_cost"`
	Variance           float64 `json:"variance"`
	VariancePct        float64 `json:"variance_pct"`
	Risk               string  `json:"risk"` // "low", "medium", "high", "critical"
}

// AgingBuckets holds unpaid balances bucketed by days overdue.
// Used symmetrically for receivables and payables.
type AgingBuckets struct {
	Current    float64
	Days30     float64
	Days60     float64
	Days90Plus float64
}

// CashFlowForecastInput is the company-wide cash position snapshot.
type CashFlowForecastInput struct {
	CurrentCash     float64
	ARAging         AgingBuckets
	APAging         AgingBuckets
	MonthlyBurnRate float64
}

// CashFlowPeriod is one cumulative 30-day projection step.
type CashFlowPeriod struct {
	Period              string  `json:"period"` // "30 Days", "60 Days", "90 Days"
	ProjectedCash       float64 `json:"projected_cash"`
	ExpectedCollections float64 `json:"expected_collections"`
	ExpectedPayments    float64 `json:"expected_payments"`
	NetChange           float64 `json:"net_change"`
}

// SafetyRiskInput aggregates company-wide safety signals.
// AvgInspectionScore is nil when no inspections were recorded; that is
// distinct from a recorded score of 0.
type SafetyRiskInput struct {
	IncidentCount         int
	SevereIncidentCount   int
	AvgInspectionScore    *float64 // 0-100
	CertGapCount          int
	DaysSinceLastIncident int
	ProjectCount          int
}

// RiskFactor is one named, weighted contributor to a composite score.
type RiskFactor struct {
	Name   string  `json:"name"`
	Score  float64 `json:"score"`  // 0-100 sub-score
	Weight float64 `json:"weight"` // fraction of the composite
	Impact string  `json:"impact"` // fixed phrase chosen by threshold
}

// SafetyRiskScore is the 0-100 composite safety risk result.
type SafetyRiskScore struct {
	Score   float64      `json:"score"`
	Level   string       `json:"level"` // "low", "medium", "high", "critical"
	Factors []RiskFactor `json:"factors"`
}

// VendorPerformanceInput aggregates one vendor's track record.
type VendorPerformanceInput struct {
	OnTimeDeliveryPct  float64
	ChangeOrderCount   int
	TotalContracts     int
	SafetyIncidents    int
	InvoiceAccuracyPct float64
	AvgResponseDays    float64
}

// VendorScore is the 0-100 composite vendor grade.
type VendorScore struct {
	Score   float64      `json:"score"`
	Grade   string       `json:"grade"` // "A".."F"
	Factors []RiskFactor `json:"factors"`
}

// EquipmentFailureInput is one machine's age/usage/maintenance snapshot.
type EquipmentFailureInput struct {
	AgeMonths                   int
	UsageHours                  float64
	MaintenanceCount            int
	DaysSinceLastService        int
	ExpectedServiceIntervalDays int
}

// EquipmentFailureForecast is the failure probability and service timing.
type EquipmentFailureForecast struct {
	FailureProbability          float64 `json:"failure_probability"` // 0-1
	Risk                        string  `json:"risk"`                // "low", "medium", "high"
	DaysUntilRecommendedService int     `json:"days_until_recommended_service"`
	Recommendation              string  `json:"recommendation"`
}

// BidWinProbabilityInput describes a bid under consideration.
type BidWinProbabilityInput struct {
	BidAmount         float64 `json:"bid_amount" validate:"required,gt=0"`
	EstimatedCost     float64 `json:"estimated_cost" validate:"required,gt=0"`
	HistoricalWinRate float64 `json:"historical_win_rate" validate:"gte=0,lte=1"`
	CompetitorCount   int     `json:"competitor_count" default:"1" validate:"gte=0"`
	RelationshipScore float64 `json:"relationship_score" validate:"gte=0,lte=100"`
}

// BidAdjustment is one named signed contribution to the win probability.
type BidAdjustment struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

// BidWinEstimate is the adjusted win probability.
type BidWinEstimate struct {
	Probability float64         `json:"probability"` // clamped to [0.01, 0.99]
	Confidence  string          `json:"confidence"`  // "high", "medium", "low"
	Adjustments []BidAdjustment `json:"adjustments"`
}

// ChangeOrderImpactInput describes a proposed change order against the
// project's current state.
type ChangeOrderImpactInput struct {
	ChangeOrderAmount     float64 `json:"change_order_amount" validate:"required"`
	CurrentBudget         float64 `json:"current_budget" validate:"required,gt=0"`
	ActualCost            float64 `json:"actual_cost" validate:"gte=0"`
	CompletionPct         float64 `json:"completion_pct" validate:"gte=0,lte=1"`
	ScheduleImpactDays    int     `json:"schedule_impact_days" validate:"gte=0"`
	PriorChangeOrderTotal float64 `json:"prior_change_order_total" validate:"gte=0"`
	OriginalContractValue float64 `json:"original_contract_value" validate:"required,gt=0"`
}

// ChangeOrderImpact is the projected effect of approving a change order.
type ChangeOrderImpact struct {
	NewBudget            float64 `json:"new_budget"`
	ProjectedFinalCost   float64 `json:"projected_final_cost"`
	CriticalPathAffected bool    `json:"critical_path_affected"`
	MarginBeforePct      float64 `json:"margin_before_pct"`
	MarginAfterPct       float64 `json:"margin_after_pct"`
	CumulativeCOPct      float64 `json:"cumulative_co_pct"`
	Recommendation       string  `json:"recommendation"`
}
