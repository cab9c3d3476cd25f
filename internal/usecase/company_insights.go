package usecase

import (
	"context"
	"sync"
	"time"

	"BuildPulse/internal/domain/models"
)

// CompanyInsightsUseCase fans out the company-wide analyses in parallel and
// assembles the dashboard landing payload. Individual failures do not fail
// the whole request.
type CompanyInsightsUseCase struct {
	insights *InsightService
	timeout  time.Duration
}

func NewCompanyInsightsUseCase(insights *InsightService) *CompanyInsightsUseCase {
	return &CompanyInsightsUseCase{insights: insights, timeout: 10 * time.Second}
}

func (uc *CompanyInsightsUseCase) GetCompanyInsights(ctx context.Context) (*models.CompanyInsights, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	res := &models.CompanyInsights{
		GeneratedAt: time.Now().UTC(),
		Errors:      map[string]string{},
	}

	type item struct {
		name string
		val  interface{}
		err  error
	}
	ch := make(chan item, 3)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.insights.CashFlowForecast(ctx)
		ch <- item{"cash_flow", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.insights.SafetyRisk(ctx)
		ch <- item{"safety", v, err}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		v, err := uc.insights.Anomalies(ctx, "", "")
		ch <- item{"alerts", v, err}
	}()

	go func() { wg.Wait(); close(ch) }()

	for it := range ch {
		if it.err != nil {
			res.Errors[it.name] = it.err.Error()
			continue
		}
		switch it.name {
		case "cash_flow":
			res.CashFlow = it.val.([]models.CashFlowPeriod)
		case "safety":
			res.Safety = it.val.(*models.SafetyRiskScore)
		case "alerts":
			res.Alerts = it.val.([]models.AlertItem)
		}
	}

	if len(res.Errors) == 0 {
		res.Errors = nil
	}
	return res, nil
}
