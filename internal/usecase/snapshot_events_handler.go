package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	domrepo "BuildPulse/internal/domain/repository"
	"BuildPulse/internal/service/cache"
	pkgkafka "BuildPulse/pkg/kafka"
	applogger "BuildPulse/pkg/logger"
)

// entityPrefixes maps a synced ERP entity to the insight cache prefixes its
// change invalidates. Unknown entities invalidate everything.
var entityPrefixes = map[string][]string{
	"project":       {"insight:overrun:", "insight:anomalies"},
	"invoice":       {"insight:cashflow", "insight:anomalies"},
	"cash_account":  {"insight:cashflow"},
	"journal_entry": {"insight:anomalies"},
	"budget_line":   {"insight:overrun:", "insight:anomalies"},
	"incident":      {"insight:safety"},
	"inspection":    {"insight:safety"},
	"certification": {"insight:safety", "insight:anomalies"},
	"vendor":        {"insight:vendor:"},
	"equipment":     {"insight:equipment:", "insight:anomalies"},
	"rfi":           {"insight:anomalies"},
	"change_order":  {"insight:anomalies"},
	"task":          {"insight:anomalies"},
}

// SnapshotEventsHandler consumes ERP sync events and invalidates the insight
// caches touched by the changed entity.
type SnapshotEventsHandler struct {
	topic   string
	cache   cache.BytesCache
	metrics domrepo.Metrics
	logger  *applogger.Logger
}

func NewSnapshotEventsHandler(topic string, c cache.BytesCache, m domrepo.Metrics, lgr *applogger.Logger) *SnapshotEventsHandler {
	return &SnapshotEventsHandler{topic: topic, cache: c, metrics: m, logger: lgr}
}

func (h *SnapshotEventsHandler) Topic() string { return h.topic }

// incoming message schema: {entity, entity_id, action}
func (h *SnapshotEventsHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Entity   string `json:"entity"`
		EntityID string `json:"entity_id"`
		Action   string `json:"action"`
	}
	if err := json.Unmarshal(b, &m); err != nil {
		if h.metrics != nil {
			h.metrics.RecordError("consumer_unmarshal")
		}
		return fmt.Errorf("unmarshal snapshot event: %w", err)
	}

	prefixes, ok := entityPrefixes[m.Entity]
	if !ok {
		prefixes = []string{"insight:"}
	}

	for _, prefix := range prefixes {
		if err := h.cache.DeletePrefix(prefix); err != nil {
			if h.metrics != nil {
				h.metrics.RecordError("cache_invalidate")
			}
			return fmt.Errorf("invalidate %s: %w", prefix, err)
		}
	}

	h.logger.Debug("snapshot event processed",
		applogger.String("entity", m.Entity),
		applogger.String("entity_id", m.EntityID),
		applogger.String("action", m.Action),
		applogger.Int("prefixes", len(prefixes)))
	return nil
}

var _ pkgkafka.MessageHandler = (*SnapshotEventsHandler)(nil)
