package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"BuildPulse/internal/domain/models"
	domrepo "BuildPulse/internal/domain/repository"
	domsvc "BuildPulse/internal/domain/service"
	"BuildPulse/internal/service/cache"
)

// CacheTTLs holds the per-analysis result cache TTLs. A zero TTL disables
// caching for that analysis.
type CacheTTLs struct {
	Overrun   time.Duration
	CashFlow  time.Duration
	Safety    time.Duration
	Vendor    time.Duration
	Equipment time.Duration
	Anomalies time.Duration
}

// InsightService assembles snapshots, runs the engine, and caches results.
// Cache keys are prefixed per analysis so snapshot events can invalidate a
// whole analysis at once.
type InsightService struct {
	store   domrepo.SnapshotStore
	engine  domsvc.Engine
	cache   cache.BytesCache
	metrics domrepo.Metrics
	ttl     CacheTTLs
}

func NewInsightService(store domrepo.SnapshotStore, engine domsvc.Engine, c cache.BytesCache, m domrepo.Metrics, ttl CacheTTLs) *InsightService {
	return &InsightService{store: store, engine: engine, cache: c, metrics: m, ttl: ttl}
}

func (s *InsightService) ProjectOverrun(ctx context.Context, projectID string) (*models.OverrunForecast, error) {
	return cached(s, "overrun", "insight:overrun:"+projectID, s.ttl.Overrun, func() (*models.OverrunForecast, error) {
		snap, err := s.store.GetBudgetSnapshot(ctx, projectID)
		if err != nil {
			return nil, err
		}
		out := timed(s.metrics, "overrun", func() models.OverrunForecast {
			return s.engine.PredictBudgetOverrun(snap)
		})
		return &out, nil
	})
}

func (s *InsightService) CashFlowForecast(ctx context.Context) ([]models.CashFlowPeriod, error) {
	out, err := cached(s, "cashflow", "insight:cashflow", s.ttl.CashFlow, func() (*[]models.CashFlowPeriod, error) {
		in, err := s.store.GetCashFlowInput(ctx)
		if err != nil {
			return nil, err
		}
		periods := timed(s.metrics, "cashflow", func() []models.CashFlowPeriod {
			return s.engine.ForecastCashFlow(in)
		})
		return &periods, nil
	})
	if err != nil {
		return nil, err
	}
	return *out, nil
}

func (s *InsightService) SafetyRisk(ctx context.Context) (*models.SafetyRiskScore, error) {
	return cached(s, "safety", "insight:safety", s.ttl.Safety, func() (*models.SafetyRiskScore, error) {
		in, err := s.store.GetSafetyInput(ctx)
		if err != nil {
			return nil, err
		}
		out := timed(s.metrics, "safety", func() models.SafetyRiskScore {
			return s.engine.CalculateSafetyRiskScore(in)
		})
		return &out, nil
	})
}

func (s *InsightService) VendorPerformance(ctx context.Context, vendorID string) (*models.VendorScore, error) {
	return cached(s, "vendor", "insight:vendor:"+vendorID, s.ttl.Vendor, func() (*models.VendorScore, error) {
		in, err := s.store.GetVendorInput(ctx, vendorID)
		if err != nil {
			return nil, err
		}
		out := timed(s.metrics, "vendor", func() models.VendorScore {
			return s.engine.ScoreVendorPerformance(in)
		})
		return &out, nil
	})
}

func (s *InsightService) EquipmentFailure(ctx context.Context, equipmentID string) (*models.EquipmentFailureForecast, error) {
	return cached(s, "equipment", "insight:equipment:"+equipmentID, s.ttl.Equipment, func() (*models.EquipmentFailureForecast, error) {
		in, err := s.store.GetEquipmentInput(ctx, equipmentID)
		if err != nil {
			return nil, err
		}
		out := timed(s.metrics, "equipment", func() models.EquipmentFailureForecast {
			return s.engine.PredictEquipmentFailure(in)
		})
		return &out, nil
	})
}

// Anomalies runs detection over the full snapshot and filters afterwards so
// the unfiltered result can be cached once.
func (s *InsightService) Anomalies(ctx context.Context, severity, category string) ([]models.AlertItem, error) {
	all, err := cached(s, "anomalies", "insight:anomalies", s.ttl.Anomalies, func() (*[]models.AlertItem, error) {
		in, err := s.store.GetAnomalyInput(ctx)
		if err != nil {
			return nil, err
		}
		alerts := timed(s.metrics, "anomalies", func() []models.AlertItem {
			return s.engine.DetectAnomalies(in)
		})
		return &alerts, nil
	})
	if err != nil {
		return nil, err
	}

	if severity == "" && category == "" {
		return *all, nil
	}
	out := make([]models.AlertItem, 0, len(*all))
	for _, a := range *all {
		if severity != "" && a.Severity != severity {
			continue
		}
		if category != "" && a.Category != category {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// BidWinProbability is request-scoped and never cached.
func (s *InsightService) BidWinProbability(in models.BidWinProbabilityInput) models.BidWinEstimate {
	return timed(s.metrics, "bidwin", func() models.BidWinEstimate {
		return s.engine.CalculateBidWinProbability(in)
	})
}

// ChangeOrderImpact is request-scoped and never cached.
func (s *InsightService) ChangeOrderImpact(in models.ChangeOrderImpactInput) models.ChangeOrderImpact {
	return timed(s.metrics, "changeorder", func() models.ChangeOrderImpact {
		return s.engine.AnalyzeChangeOrderImpact(in)
	})
}

// timed runs compute and records its duration.
func timed[T any](m domrepo.Metrics, analysis string, compute func() T) T {
	start := time.Now()
	out := compute()
	if m != nil {
		m.RecordAnalysis(analysis, time.Since(start).Seconds())
	}
	return out
}

// cached wraps compute with a JSON byte cache.
func cached[T any](s *InsightService, analysis, key string, ttl time.Duration, compute func() (*T, error)) (*T, error) {
	if s.cache != nil && ttl > 0 {
		if b, ok, err := s.cache.GetBytes(key); err == nil && ok {
			var v T
			if uerr := json.Unmarshal(b, &v); uerr == nil {
				if s.metrics != nil {
					s.metrics.RecordCache(analysis, true)
				}
				return &v, nil
			}
		}
		if s.metrics != nil {
			s.metrics.RecordCache(analysis, false)
		}
	}

	v, err := compute()
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordError(analysis)
		}
		return nil, fmt.Errorf("%s: %w", analysis, err)
	}

	if s.cache != nil && ttl > 0 {
		if b, merr := json.Marshal(v); merr == nil {
			_ = s.cache.SetBytes(key, b, ttl)
		}
	}
	return v, nil
}
