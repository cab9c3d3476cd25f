package predictive

import (
	"testing"

	"BuildPulse/internal/domain/models"
)

func TestBidWinProbabilityTypicalBid(t *testing.T) {
	got := CalculateBidWinProbability(models.BidWinProbabilityInput{
		BidAmount:         5200000,
		EstimatedCost:     4800000, // margin 1.083 -> +0.05
		HistoricalWinRate: 0.40,
		CompetitorCount:   3, // -0.10
		RelationshipScore: 80, // +0.08
	})
	if got.Probability != 0.43 {
		t.Fatalf("probability = %v, want 0.43", got.Probability)
	}
	if got.Confidence != "high" {
		t.Fatalf("confidence = %q, want high", got.Confidence)
	}
	if len(got.Adjustments) != 4 {
		t.Fatalf("adjustments = %d, want 4", len(got.Adjustments))
	}
}

func TestBidWinProbabilityClampedLow(t *testing.T) {
	got := CalculateBidWinProbability(models.BidWinProbabilityInput{
		BidAmount:         2000000,
		EstimatedCost:     1000000, // margin 2 -> -0.15
		HistoricalWinRate: 0,
		CompetitorCount:   50,
		RelationshipScore: 0,
	})
	if got.Probability != 0.01 {
		t.Fatalf("probability = %v, want floor 0.01", got.Probability)
	}
	if got.Confidence != "low" {
		t.Fatalf("confidence = %q, want low", got.Confidence)
	}
}

func TestBidWinProbabilityClampedHigh(t *testing.T) {
	got := CalculateBidWinProbability(models.BidWinProbabilityInput{
		BidAmount:         1000000,
		EstimatedCost:     1000000, // margin 1 -> +0.08
		HistoricalWinRate: 1,
		CompetitorCount:   1,
		RelationshipScore: 100,
	})
	if got.Probability != 0.99 {
		t.Fatalf("probability = %v, want ceiling 0.99", got.Probability)
	}
}

func TestBidWinProbabilityAlwaysInBounds(t *testing.T) {
	extremes := []models.BidWinProbabilityInput{
		{BidAmount: 1e9, EstimatedCost: 1, HistoricalWinRate: 1, CompetitorCount: 50},
		{BidAmount: 1, EstimatedCost: 1e9, HistoricalWinRate: -5, CompetitorCount: -3, RelationshipScore: 500},
		{BidAmount: 100, EstimatedCost: 0, HistoricalWinRate: 0.5},
	}
	for i, in := range extremes {
		got := CalculateBidWinProbability(in)
		if got.Probability < 0.01 || got.Probability > 0.99 {
			t.Fatalf("case %d: probability %v outside [0.01, 0.99]", i, got.Probability)
		}
	}
}

func TestBidWinMarginSteps(t *testing.T) {
	cases := []struct {
		margin float64
		want   float64
	}{
		{1.0, 0.08}, {1.049, 0.08}, {1.05, 0.05}, {1.15, 0.05},
		{1.151, -0.05}, {1.25, -0.05}, {1.251, -0.15},
	}
	for _, c := range cases {
		if got := marginAdjustment(c.margin); got != c.want {
			t.Fatalf("marginAdjustment(%v) = %v, want %v", c.margin, got, c.want)
		}
	}
}

func TestBidWinConfidenceTiers(t *testing.T) {
	medium := CalculateBidWinProbability(models.BidWinProbabilityInput{
		BidAmount: 100, EstimatedCost: 100, HistoricalWinRate: 0.2, CompetitorCount: 10,
	})
	if medium.Confidence != "medium" {
		t.Fatalf("confidence = %q, want medium", medium.Confidence)
	}
	mediumRel := CalculateBidWinProbability(models.BidWinProbabilityInput{
		BidAmount: 100, EstimatedCost: 100, RelationshipScore: 30,
	})
	if mediumRel.Confidence != "medium" {
		t.Fatalf("confidence = %q, want medium", mediumRel.Confidence)
	}
}
