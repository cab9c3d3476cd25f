package predictive

import "BuildPulse/internal/domain/models"

// RateTable holds per-bucket collection or payment rates.
type RateTable struct {
	Current    float64
	Days30     float64
	Days60     float64
	Days90Plus float64
}

// ARCollectionRates is the expected share of each receivable bucket that
// actually collects; older balances collect at a discount.
var ARCollectionRates = RateTable{Current: 0.95, Days30: 0.85, Days60: 0.70, Days90Plus: 0.50}

// APPaymentRates is the share of each payable bucket expected to be paid out.
var APPaymentRates = RateTable{Current: 1.00, Days30: 0.95, Days60: 0.90, Days90Plus: 0.80}

var forecastPeriods = [3]string{"30 Days", "60 Days", "90 Days"}

// bucketSplit returns the rate-adjusted amount flowing in period i (0..2).
// Adjacent buckets are half-split across periods so no dollar is counted
// twice: period 0 takes all of current plus half of days30, period 1 the
// other half of days30 plus half of days60, period 2 the rest.
func bucketSplit(b models.AgingBuckets, r RateTable, i int) float64 {
	switch i {
	case 0:
		return b.Current*r.Current + 0.5*b.Days30*r.Days30
	case 1:
		return 0.5*b.Days30*r.Days30 + 0.5*b.Days60*r.Days60
	default:
		return 0.5*b.Days60*r.Days60 + b.Days90Plus*r.Days90Plus
	}
}

// ForecastCashFlow projects the 30/60/90-day cash position from aging
// receivables/payables and the monthly burn rate. The running balance is
// seeded with CurrentCash and each period consumes one month of burn.
func ForecastCashFlow(in models.CashFlowForecastInput) []models.CashFlowPeriod {
	out := make([]models.CashFlowPeriod, 0, len(forecastPeriods))
	cash := in.CurrentCash
	for i, period := range forecastPeriods {
		collections := bucketSplit(in.ARAging, ARCollectionRates, i)
		payments := bucketSplit(in.APAging, APPaymentRates, i)
		net := collections - payments - in.MonthlyBurnRate
		cash += net
		out = append(out, models.CashFlowPeriod{
			Period:              period,
			ProjectedCash:       Round2(cash),
			ExpectedCollections: Round2(collections),
			ExpectedPayments:    Round2(payments),
			NetChange:           Round2(net),
		})
	}
	return out
}
