package predictive

import "BuildPulse/internal/domain/models"

// Probability bounds; a bid never reads as a sure thing or a lost cause.
const (
	bidProbabilityFloor   = 0.01
	bidProbabilityCeiling = 0.99
)

const (
	competitorPenaltyStep = 0.05
	competitorPenaltyCap  = 0.30
	relationshipBoostMax  = 0.10
)

// CalculateBidWinProbability adjusts the historical win rate by margin,
// competition and client-relationship signals.
func CalculateBidWinProbability(in models.BidWinProbabilityInput) models.BidWinEstimate {
	base := Clamp01(in.HistoricalWinRate)

	cost := in.EstimatedCost
	if cost < minCompletion {
		cost = minCompletion
	}
	margin := in.BidAmount / cost
	marginAdj := marginAdjustment(margin)

	competitionPenalty := Clamp(float64(in.CompetitorCount-1)*competitorPenaltyStep, 0, competitorPenaltyCap)

	relationshipBoost := Clamp(in.RelationshipScore, 0, 100) / 100 * relationshipBoostMax

	probability := Clamp(base+marginAdj-competitionPenalty+relationshipBoost,
		bidProbabilityFloor, bidProbabilityCeiling)

	return models.BidWinEstimate{
		Probability: Round2(probability),
		Confidence:  bidConfidence(in),
		Adjustments: []models.BidAdjustment{
			{Name: "Historical Win Rate", Impact: Round2(base)},
			{Name: "Margin", Impact: Round2(marginAdj)},
			{Name: "Competition", Impact: Round2(-competitionPenalty)},
			{Name: "Relationship", Impact: Round2(relationshipBoost)},
		},
	}
}

// marginAdjustment is a step function on bid/cost: tight bids win more.
func marginAdjustment(margin float64) float64 {
	switch {
	case margin < 1.05:
		return 0.08
	case margin <= 1.15:
		return 0.05
	case margin <= 1.25:
		return -0.05
	default:
		return -0.15
	}
}

func bidConfidence(in models.BidWinProbabilityInput) string {
	if in.HistoricalWinRate > 0 && in.RelationshipScore >= 50 && in.CompetitorCount <= 5 {
		return "high"
	}
	if in.HistoricalWinRate > 0 || in.RelationshipScore >= 30 {
		return "medium"
	}
	return "low"
}
