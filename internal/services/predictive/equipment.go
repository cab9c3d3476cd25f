package predictive

import "BuildPulse/internal/domain/models"

// Equipment failure factor weights; must sum to 1.
var equipmentWeights = struct {
	Age         float64
	Usage       float64
	Overdue     float64
	Maintenance float64
}{0.20, 0.20, 0.35, 0.25}

const (
	equipmentAgeCeilingMonths  = 120   // fleet age normalization ceiling
	equipmentUsageCeilingHours = 10000 // usage normalization ceiling
	overdueRatioCap            = 2     // service-overdue ratio cap
)

// Service recommendation messages, selected by the unclipped overdue ratio
// and the failure probability.
const (
	RecommendImmediate  = "Critically overdue for service. Schedule immediately."
	RecommendWithin7    = "Service overdue. Schedule within 7 days."
	RecommendWithin14   = "Service due soon. Schedule within 2 weeks."
	RecommendPreventive = "Elevated failure risk. Schedule a preventive inspection."
	RecommendRoutine    = "No action needed. Continue routine maintenance schedule."
)

// PredictEquipmentFailure estimates failure probability in [0,1] from age,
// usage and maintenance history, and recommends service timing.
func PredictEquipmentFailure(in models.EquipmentFailureInput) models.EquipmentFailureForecast {
	age := Clamp01(float64(in.AgeMonths) / equipmentAgeCeilingMonths)
	usage := Clamp01(in.UsageHours / equipmentUsageCeilingHours)

	interval := in.ExpectedServiceIntervalDays
	if interval < 1 {
		interval = 1
	}
	overdueRatio := float64(in.DaysSinceLastService) / float64(interval)
	overdue := overdueRatio
	if overdue > overdueRatioCap {
		overdue = overdueRatioCap
	}
	if overdue < 0 {
		overdue = 0
	}

	// One fresh machine starts at 1.0 and each service on record walks the
	// factor down to a floor of 0.2 at ten or more services.
	maintenance := 1.0 - 0.08*float64(in.MaintenanceCount)
	if maintenance < 0.2 {
		maintenance = 0.2
	}

	probability := age*equipmentWeights.Age +
		usage*equipmentWeights.Usage +
		(overdue/overdueRatioCap)*equipmentWeights.Overdue +
		maintenance*equipmentWeights.Maintenance
	probability = Clamp01(Round2(probability))

	daysUntil := in.ExpectedServiceIntervalDays - in.DaysSinceLastService
	if daysUntil < 0 {
		daysUntil = 0
	}

	return models.EquipmentFailureForecast{
		FailureProbability:          probability,
		Risk:                        equipmentRisk(probability),
		DaysUntilRecommendedService: daysUntil,
		Recommendation:              serviceRecommendation(overdueRatio, probability),
	}
}

func equipmentRisk(probability float64) string {
	switch {
	case probability < 0.3:
		return "low"
	case probability <= 0.6:
		return "medium"
	default:
		return "high"
	}
}

func serviceRecommendation(overdueRatio, probability float64) string {
	switch {
	case overdueRatio > 1.5:
		return RecommendImmediate
	case overdueRatio > 1.0:
		return RecommendWithin7
	case overdueRatio > 0.8:
		return RecommendWithin14
	case probability > 0.5:
		return RecommendPreventive
	default:
		return RecommendRoutine
	}
}
