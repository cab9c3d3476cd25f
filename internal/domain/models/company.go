package models

import "time"

// CompanyInsights bundles the company-wide analyses for the dashboard
// landing view. Partial failure is reported per analysis in Errors.
type CompanyInsights struct {
	GeneratedAt time.Time         `json:"generated_at"`
	CashFlow    []CashFlowPeriod  `json:"cash_flow,omitempty"`
	Safety      *SafetyRiskScore  `json:"safety,omitempty"`
	Alerts      []AlertItem       `json:"alerts,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}
