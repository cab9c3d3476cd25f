package usecase

import (
	"context"
	"fmt"

	applogger "BuildPulse/pkg/logger"
	"BuildPulse/pkg/queue"
)

// AlertDigestJob consumes queued alert batches and emits a digest summary.
// Delivery (email, chat webhook) hangs off the digest log sink; the job
// itself only aggregates.
type AlertDigestJob struct {
	logger *applogger.Logger
}

func NewAlertDigestJob(lgr *applogger.Logger) *AlertDigestJob {
	return &AlertDigestJob{logger: lgr}
}

func (j *AlertDigestJob) Name() string { return "alert-digest" }
func (j *AlertDigestJob) Type() string { return DigestMessageType }

func (j *AlertDigestJob) Handle(ctx context.Context, payload interface{}) error {
	p, err := queue.ParsePayload[AlertDigestPayload](payload)
	if err != nil {
		return fmt.Errorf("parse digest payload: %w", err)
	}

	counts := countBySeverity(p.Alerts)
	titles := make([]string, 0, len(p.Alerts))
	for _, a := range p.Alerts {
		titles = append(titles, fmt.Sprintf("[%s] %s", a.Severity, a.Title))
	}

	j.logger.Info("alert digest",
		applogger.Int("total", len(p.Alerts)),
		applogger.Int("critical", counts["critical"]),
		applogger.Int("warning", counts["warning"]),
		applogger.Int("info", counts["info"]),
		applogger.Strings("alerts", titles))
	return nil
}

var _ queue.Job = (*AlertDigestJob)(nil)
