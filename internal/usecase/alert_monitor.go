package usecase

import (
	"context"
	"sync"
	"time"

	"BuildPulse/internal/domain/models"
	domrepo "BuildPulse/internal/domain/repository"
	domsvc "BuildPulse/internal/domain/service"
	monmetrics "BuildPulse/internal/service/metrics"
	applogger "BuildPulse/pkg/logger"
	"BuildPulse/pkg/queue"
)

// Broadcaster pushes alert batches to connected clients.
type Broadcaster interface {
	Broadcast(alerts []models.AlertItem)
}

// DigestMessageType is the queue message type for alert digest jobs.
const DigestMessageType = "alert_digest"

// AlertDigestPayload is the queue payload carrying newly raised alerts.
type AlertDigestPayload struct {
	RaisedAt time.Time          `json:"raised_at"`
	Alerts   []models.AlertItem `json:"alerts"`
}

// AlertMonitor periodically re-runs anomaly detection and fans out alerts
// that were not present in the previous sweep. Alert IDs are deterministic,
// so the diff is a set difference on IDs.
type AlertMonitor struct {
	store     domrepo.SnapshotStore
	detector  domsvc.AnomalyDetector
	publisher domrepo.AlertPublisher
	broadcast Broadcaster
	digest    queue.QueueService
	metrics   domrepo.Metrics
	logger    *applogger.Logger
	interval  time.Duration

	mu       sync.RWMutex
	lastSeen map[string]struct{}
	current  []models.AlertItem

	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

func NewAlertMonitor(
	store domrepo.SnapshotStore,
	detector domsvc.AnomalyDetector,
	publisher domrepo.AlertPublisher,
	broadcast Broadcaster,
	digest queue.QueueService,
	metrics domrepo.Metrics,
	lgr *applogger.Logger,
	interval time.Duration,
) *AlertMonitor {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &AlertMonitor{
		store:     store,
		detector:  detector,
		publisher: publisher,
		broadcast: broadcast,
		digest:    digest,
		metrics:   metrics,
		logger:    lgr,
		interval:  interval,
		lastSeen:  make(map[string]struct{}),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// SetBroadcaster attaches the fan-out sink. Call before Start; the hub
// needs the monitor for connect-time snapshots, so it is wired afterwards.
func (m *AlertMonitor) SetBroadcaster(b Broadcaster) {
	m.broadcast = b
}

// Start runs the sweep loop until Stop. The first sweep runs immediately.
func (m *AlertMonitor) Start() {
	monmetrics.Register()
	go m.loop()
}

func (m *AlertMonitor) loop() {
	defer close(m.doneCh)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Sweep(context.Background())
	for {
		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
			m.Sweep(context.Background())
		}
	}
}

// Stop stops the sweep loop and waits for the in-flight sweep.
func (m *AlertMonitor) Stop(ctx context.Context) error {
	m.stopOnce.Do(func() { close(m.stopCh) })
	select {
	case <-m.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// CurrentAlerts returns the alerts from the latest sweep, most severe first.
func (m *AlertMonitor) CurrentAlerts() []models.AlertItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AlertItem, len(m.current))
	copy(out, m.current)
	return out
}

// Sweep runs one detection pass and fans out newly raised alerts.
func (m *AlertMonitor) Sweep(ctx context.Context) {
	start := time.Now()

	in, err := m.store.GetAnomalyInput(ctx)
	if err != nil {
		monmetrics.SweepErrors.WithLabelValues("snapshot").Inc()
		if m.metrics != nil {
			m.metrics.RecordError("sweep_snapshot")
		}
		m.logger.Error("alert sweep snapshot failed", applogger.Error(err))
		return
	}

	alerts := m.detector.DetectAnomalies(in)
	monmetrics.SweepLatency.WithLabelValues("detect").Observe(time.Since(start).Seconds())

	fresh := m.diff(alerts)
	m.observeGauges(alerts)

	if len(fresh) == 0 {
		m.logger.Debug("alert sweep complete",
			applogger.Int("alerts", len(alerts)),
			applogger.Int("new", 0))
		return
	}

	if err := m.publisher.PublishAlerts(ctx, fresh); err != nil {
		monmetrics.SweepErrors.WithLabelValues("publish").Inc()
		m.logger.Error("alert publish failed", applogger.Error(err))
	} else if m.metrics != nil {
		for severity, n := range countBySeverity(fresh) {
			m.metrics.RecordAlertsPublished(severity, n)
		}
	}

	if m.broadcast != nil {
		m.broadcast.Broadcast(fresh)
	}

	if m.digest != nil {
		payload := AlertDigestPayload{RaisedAt: time.Now().UTC(), Alerts: fresh}
		if err := m.digest.PublishMessage(ctx, DigestMessageType, payload); err != nil {
			monmetrics.SweepErrors.WithLabelValues("digest").Inc()
			m.logger.Error("digest enqueue failed", applogger.Error(err))
		}
	}

	m.logger.Info("alert sweep complete",
		applogger.Int("alerts", len(alerts)),
		applogger.Int("new", len(fresh)),
		applogger.Duration("duration_ms", time.Since(start)))
}

// diff updates the seen set and returns alerts not present last sweep.
func (m *AlertMonitor) diff(alerts []models.AlertItem) []models.AlertItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	seen := make(map[string]struct{}, len(alerts))
	var fresh []models.AlertItem
	for _, a := range alerts {
		seen[a.ID] = struct{}{}
		if _, ok := m.lastSeen[a.ID]; !ok {
			fresh = append(fresh, a)
		}
	}
	m.lastSeen = seen
	m.current = alerts
	return fresh
}

func (m *AlertMonitor) observeGauges(alerts []models.AlertItem) {
	counts := countBySeverity(alerts)
	for _, severity := range []string{models.SeverityCritical, models.SeverityWarning, models.SeverityInfo} {
		monmetrics.ActiveAlerts.WithLabelValues(severity).Set(float64(counts[severity]))
	}
}

func countBySeverity(alerts []models.AlertItem) map[string]int {
	counts := make(map[string]int, 3)
	for _, a := range alerts {
		counts[a.Severity]++
	}
	return counts
}
