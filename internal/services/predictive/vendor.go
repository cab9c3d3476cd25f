package predictive

import (
	"math"

	"BuildPulse/internal/domain/models"
)

// Vendor factor weights; must sum to 1.
var vendorWeights = struct {
	Delivery       float64
	ChangeOrders   float64
	Safety         float64
	Accuracy       float64
	Responsiveness float64
}{0.30, 0.20, 0.20, 0.15, 0.15}

const (
	vendorSafetyIncidentFloor = 5  // incidents at which the safety sub-score hits 0
	vendorResponseDaysFloor   = 14 // average response days scoring 0
)

// ScoreVendorPerformance grades a vendor 0-100 from delivery, change-order,
// safety, billing-accuracy and responsiveness signals.
func ScoreVendorPerformance(in models.VendorPerformanceInput) models.VendorScore {
	delivery := Clamp(in.OnTimeDeliveryPct, 0, 100)

	contracts := in.TotalContracts
	if contracts < 1 {
		contracts = 1
	}
	coRatio := float64(in.ChangeOrderCount) / float64(contracts)
	changeOrders := Clamp((1-coRatio)*100, 0, 100)

	safety := Clamp(100-float64(in.SafetyIncidents)*(100/vendorSafetyIncidentFloor), 0, 100)

	accuracy := Clamp(in.InvoiceAccuracyPct, 0, 100)

	responsiveness := Clamp(100-in.AvgResponseDays/vendorResponseDaysFloor*100, 0, 100)

	score := delivery*vendorWeights.Delivery +
		changeOrders*vendorWeights.ChangeOrders +
		safety*vendorWeights.Safety +
		accuracy*vendorWeights.Accuracy +
		responsiveness*vendorWeights.Responsiveness
	score = Clamp(math.Round(score), 0, 100)

	return models.VendorScore{
		Score: score,
		Grade: vendorGrade(score),
		Factors: []models.RiskFactor{
			{Name: "On-Time Delivery", Score: Round2(delivery), Weight: vendorWeights.Delivery, Impact: impactPhrase(100 - delivery)},
			{Name: "Change Order Frequency", Score: Round2(changeOrders), Weight: vendorWeights.ChangeOrders, Impact: impactPhrase(100 - changeOrders)},
			{Name: "Safety Record", Score: Round2(safety), Weight: vendorWeights.Safety, Impact: impactPhrase(100 - safety)},
			{Name: "Invoice Accuracy", Score: Round2(accuracy), Weight: vendorWeights.Accuracy, Impact: impactPhrase(100 - accuracy)},
			{Name: "Responsiveness", Score: Round2(responsiveness), Weight: vendorWeights.Responsiveness, Impact: impactPhrase(100 - responsiveness)},
		},
	}
}

func vendorGrade(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
