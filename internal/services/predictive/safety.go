package predictive

import (
	"math"

	"BuildPulse/internal/domain/models"
)

// Safety factor weights; must sum to 1.
var safetyWeights = struct {
	IncidentRate float64
	Severity     float64
	Inspection   float64
	CertGaps     float64
	Recency      float64
}{0.30, 0.25, 0.20, 0.15, 0.10}

const (
	incidentsPerProjectCeiling = 3   // incidents/project scoring 100
	certGapCeiling             = 10  // gaps scoring 100
	incidentRecencyWindow      = 365 // days for the recency decay
	noInspectionDataScore      = 50  // neutral sub-score when no inspections exist
)

// CalculateSafetyRiskScore produces a 0-100 composite risk score from five
// weighted company-wide signals. Missing inspection data scores a neutral 50
// rather than being conflated with a recorded score of 0.
func CalculateSafetyRiskScore(in models.SafetyRiskInput) models.SafetyRiskScore {
	projects := in.ProjectCount
	if projects < 1 {
		projects = 1
	}
	incidentRate := Clamp(float64(in.IncidentCount)/float64(projects)/incidentsPerProjectCeiling*100, 0, 100)

	severity := 0.0
	if in.IncidentCount > 0 {
		severity = Clamp(float64(in.SevereIncidentCount)/float64(in.IncidentCount)*100, 0, 100)
	}

	inspection := float64(noInspectionDataScore)
	inspectionImpact := "No inspection data"
	if in.AvgInspectionScore != nil {
		inspection = 100 - Clamp(*in.AvgInspectionScore, 0, 100)
		inspectionImpact = impactPhrase(inspection)
	}

	certGaps := Clamp(float64(in.CertGapCount)/certGapCeiling*100, 0, 100)

	recency := 0.0
	if in.IncidentCount > 0 {
		days := in.DaysSinceLastIncident
		if days < 0 {
			days = 0
		}
		recency = Clamp((1-float64(days)/incidentRecencyWindow)*100, 0, 100)
	}

	score := incidentRate*safetyWeights.IncidentRate +
		severity*safetyWeights.Severity +
		inspection*safetyWeights.Inspection +
		certGaps*safetyWeights.CertGaps +
		recency*safetyWeights.Recency
	score = Clamp(math.Round(score), 0, 100)

	return models.SafetyRiskScore{
		Score: score,
		Level: riskLevel(score),
		Factors: []models.RiskFactor{
			{Name: "Incident Rate", Score: Round2(incidentRate), Weight: safetyWeights.IncidentRate, Impact: impactPhrase(incidentRate)},
			{Name: "Incident Severity", Score: Round2(severity), Weight: safetyWeights.Severity, Impact: impactPhrase(severity)},
			{Name: "Inspection Scores", Score: Round2(inspection), Weight: safetyWeights.Inspection, Impact: inspectionImpact},
			{Name: "Certification Gaps", Score: Round2(certGaps), Weight: safetyWeights.CertGaps, Impact: impactPhrase(certGaps)},
			{Name: "Incident Recency", Score: Round2(recency), Weight: safetyWeights.Recency, Impact: impactPhrase(recency)},
		},
	}
}

func riskLevel(score float64) string {
	switch {
	case score <= 25:
		return "low"
	case score <= 50:
		return "medium"
	case score <= 75:
		return "high"
	default:
		return "critical"
	}
}

// impactPhrase classifies a 0-100 sub-score into a fixed display phrase.
func impactPhrase(score float64) string {
	switch {
	case score >= 75:
		return "Severe impact"
	case score >= 50:
		return "High impact"
	case score >= 25:
		return "Moderate impact"
	default:
		return "Minimal impact"
	}
}
