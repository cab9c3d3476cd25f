package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"BuildPulse/internal/domain/models"
	pkgch "BuildPulse/pkg/clickhouse"
	applogger "BuildPulse/pkg/logger"
)

// CHSnapshotStore implements SnapshotStore backed by ClickHouse. The ERP
// sync pipeline lands flattened operational rows; every getter aggregates
// them into one analysis input.
type CHSnapshotStore struct {
	ch *pkgch.Client
	db *sql.DB
	l  *applogger.Logger
}

func NewCHSnapshotStore(ch *pkgch.Client) *CHSnapshotStore {
	return &CHSnapshotStore{ch: ch, db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHSnapshotStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHSnapshotStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *CHSnapshotStore) Close() error {
	return s.ch.Close()
}

func (s *CHSnapshotStore) GetBudgetSnapshot(ctx context.Context, projectID string) (models.BudgetSnapshot, error) {
	start := time.Now()
	const q = `
        SELECT budget, actual_cost, completion_pct
        FROM buildpulse.projects FINAL
        WHERE project_id = ?
    `
	var snap models.BudgetSnapshot
	err := s.db.QueryRowContext(ctx, q, projectID).
		Scan(&snap.Budget, &snap.ActualCost, &snap.CompletionPct)
	if err != nil {
		if err == sql.ErrNoRows {
			return snap, fmt.Errorf("project %s: %w", projectID, err)
		}
		s.logErr("budget_snapshot", err, applogger.String("project_id", projectID))
		return snap, fmt.Errorf("get budget snapshot: %w", err)
	}
	s.logOK("budget_snapshot", start, applogger.String("project_id", projectID))
	return snap, nil
}

func (s *CHSnapshotStore) GetCashFlowInput(ctx context.Context) (models.CashFlowForecastInput, error) {
	start := time.Now()
	var in models.CashFlowForecastInput

	const cashQ = `
        SELECT sum(balance), any(monthly_burn_rate)
        FROM buildpulse.cash_accounts FINAL
    `
	if err := s.db.QueryRowContext(ctx, cashQ).Scan(&in.CurrentCash, &in.MonthlyBurnRate); err != nil {
		s.logErr("cashflow_cash", err)
		return in, fmt.Errorf("get cash position: %w", err)
	}

	ar, err := s.agingBuckets(ctx, "receivable")
	if err != nil {
		return in, err
	}
	ap, err := s.agingBuckets(ctx, "payable")
	if err != nil {
		return in, err
	}
	in.ARAging = ar
	in.APAging = ap

	s.logOK("cashflow_input", start)
	return in, nil
}

// agingBuckets groups open invoice balances by days overdue.
func (s *CHSnapshotStore) agingBuckets(ctx context.Context, side string) (models.AgingBuckets, error) {
	const q = `
        SELECT
            sumIf(open_balance, days_overdue <= 0),
            sumIf(open_balance, days_overdue > 0 AND days_overdue <= 30),
            sumIf(open_balance, days_overdue > 30 AND days_overdue <= 60),
            sumIf(open_balance, days_overdue > 60)
        FROM buildpulse.open_invoices FINAL
        WHERE side = ?
    `
	var b models.AgingBuckets
	err := s.db.QueryRowContext(ctx, q, side).
		Scan(&b.Current, &b.Days30, &b.Days60, &b.Days90Plus)
	if err != nil {
		s.logErr("aging_buckets", err, applogger.String("side", side))
		return b, fmt.Errorf("get %s aging: %w", side, err)
	}
	return b, nil
}

func (s *CHSnapshotStore) GetSafetyInput(ctx context.Context) (models.SafetyRiskInput, error) {
	start := time.Now()
	var in models.SafetyRiskInput

	const incidentsQ = `
        SELECT
            count(),
            countIf(severity IN ('severe', 'fatal')),
            coalesce(dateDiff('day', max(occurred_at), now()), 3650)
        FROM buildpulse.safety_incidents
        WHERE occurred_at >= now() - INTERVAL 365 DAY
    `
	if err := s.db.QueryRowContext(ctx, incidentsQ).
		Scan(&in.IncidentCount, &in.SevereIncidentCount, &in.DaysSinceLastIncident); err != nil {
		s.logErr("safety_incidents", err)
		return in, fmt.Errorf("get safety incidents: %w", err)
	}

	const inspectionQ = `
        SELECT count(), avg(score)
        FROM buildpulse.inspections
        WHERE inspected_at >= now() - INTERVAL 365 DAY
    `
	var inspections int
	var avgScore sql.NullFloat64
	if err := s.db.QueryRowContext(ctx, inspectionQ).Scan(&inspections, &avgScore); err != nil {
		s.logErr("safety_inspections", err)
		return in, fmt.Errorf("get inspections: %w", err)
	}
	if inspections > 0 && avgScore.Valid {
		v := avgScore.Float64
		in.AvgInspectionScore = &v
	}

	const gapsQ = `
        SELECT
            countIf(expires_at < now()),
            (SELECT count() FROM buildpulse.projects FINAL WHERE status = 'active')
        FROM buildpulse.certifications FINAL
    `
	if err := s.db.QueryRowContext(ctx, gapsQ).Scan(&in.CertGapCount, &in.ProjectCount); err != nil {
		s.logErr("safety_gaps", err)
		return in, fmt.Errorf("get cert gaps: %w", err)
	}

	s.logOK("safety_input", start, applogger.Int("incidents", in.IncidentCount))
	return in, nil
}

func (s *CHSnapshotStore) GetVendorInput(ctx context.Context, vendorID string) (models.VendorPerformanceInput, error) {
	start := time.Now()
	const q = `
        SELECT
            on_time_delivery_pct,
            change_order_count,
            total_contracts,
            safety_incidents,
            invoice_accuracy_pct,
            avg_response_days
        FROM buildpulse.vendor_stats FINAL
        WHERE vendor_id = ?
    `
	var in models.VendorPerformanceInput
	err := s.db.QueryRowContext(ctx, q, vendorID).Scan(
		&in.OnTimeDeliveryPct,
		&in.ChangeOrderCount,
		&in.TotalContracts,
		&in.SafetyIncidents,
		&in.InvoiceAccuracyPct,
		&in.AvgResponseDays,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return in, fmt.Errorf("vendor %s: %w", vendorID, err)
		}
		s.logErr("vendor_input", err, applogger.String("vendor_id", vendorID))
		return in, fmt.Errorf("get vendor input: %w", err)
	}
	s.logOK("vendor_input", start, applogger.String("vendor_id", vendorID))
	return in, nil
}

func (s *CHSnapshotStore) GetEquipmentInput(ctx context.Context, equipmentID string) (models.EquipmentFailureInput, error) {
	start := time.Now()
	const q = `
        SELECT
            dateDiff('month', purchased_at, now()),
            usage_hours,
            maintenance_count,
            dateDiff('day', last_serviced_at, now()),
            service_interval_days
        FROM buildpulse.equipment FINAL
        WHERE equipment_id = ?
    `
	var in models.EquipmentFailureInput
	err := s.db.QueryRowContext(ctx, q, equipmentID).Scan(
		&in.AgeMonths,
		&in.UsageHours,
		&in.MaintenanceCount,
		&in.DaysSinceLastService,
		&in.ExpectedServiceIntervalDays,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return in, fmt.Errorf("equipment %s: %w", equipmentID, err)
		}
		s.logErr("equipment_input", err, applogger.String("equipment_id", equipmentID))
		return in, fmt.Errorf("get equipment input: %w", err)
	}
	s.logOK("equipment_input", start, applogger.String("equipment_id", equipmentID))
	return in, nil
}

func (s *CHSnapshotStore) GetAnomalyInput(ctx context.Context) (models.AnomalyDetectionInput, error) {
	start := time.Now()
	var in models.AnomalyDetectionInput

	if err := s.scanUnlinkedInvoices(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanBudgetOverruns(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanStaleDrafts(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanExpiringCerts(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanOverdueRFIs(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanPendingCOs(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanOverdueEquipment(ctx, &in); err != nil {
		return in, err
	}
	if err := s.scanOverdueTasks(ctx, &in); err != nil {
		return in, err
	}

	s.logOK("anomaly_input", start)
	return in, nil
}

func (s *CHSnapshotStore) scanUnlinkedInvoices(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT invoice_id, number, vendor_name, amount
        FROM buildpulse.invoices FINAL
        WHERE status = 'posted' AND journal_entry_id = ''
        ORDER BY invoice_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("unlinked_invoices", err)
		return fmt.Errorf("get unlinked invoices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.UnlinkedInvoice
		if err := rows.Scan(&r.ID, &r.Number, &r.VendorName, &r.Amount); err != nil {
			return fmt.Errorf("scan unlinked invoice: %w", err)
		}
		in.UnlinkedInvoices = append(in.UnlinkedInvoices, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanBudgetOverruns(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT line_id, name, budget, actual
        FROM buildpulse.budget_lines FINAL
        WHERE budget > 0 AND actual / budget * 100 >= 90
        ORDER BY line_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("budget_overruns", err)
		return fmt.Errorf("get budget overruns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.BudgetLineUsage
		if err := rows.Scan(&r.ID, &r.Name, &r.Budget, &r.Actual); err != nil {
			return fmt.Errorf("scan budget line: %w", err)
		}
		in.BudgetOverruns = append(in.BudgetOverruns, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanStaleDrafts(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT entry_id, number, dateDiff('day', created_at, now())
        FROM buildpulse.journal_entries FINAL
        WHERE status = 'draft' AND created_at < now() - INTERVAL 14 DAY
        ORDER BY entry_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("stale_drafts", err)
		return fmt.Errorf("get stale drafts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.StaleDraftEntry
		if err := rows.Scan(&r.ID, &r.Number, &r.DaysInDraft); err != nil {
			return fmt.Errorf("scan stale draft: %w", err)
		}
		in.StaleDrafts = append(in.StaleDrafts, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanExpiringCerts(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT cert_id, name, holder_name, dateDiff('day', now(), expires_at)
        FROM buildpulse.certifications FINAL
        WHERE expires_at < now() + INTERVAL 30 DAY
        ORDER BY cert_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("expiring_certs", err)
		return fmt.Errorf("get expiring certs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.ExpiringCertification
		if err := rows.Scan(&r.ID, &r.Name, &r.HolderName, &r.DaysUntilExpiry); err != nil {
			return fmt.Errorf("scan certification: %w", err)
		}
		in.ExpiringCerts = append(in.ExpiringCerts, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanOverdueRFIs(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT rfi_id, number, subject, dateDiff('day', submitted_at, now())
        FROM buildpulse.rfis FINAL
        WHERE status = 'open' AND submitted_at < now() - INTERVAL 14 DAY
        ORDER BY rfi_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("overdue_rfis", err)
		return fmt.Errorf("get overdue rfis: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.OverdueRFI
		if err := rows.Scan(&r.ID, &r.Number, &r.Subject, &r.DaysPending); err != nil {
			return fmt.Errorf("scan rfi: %w", err)
		}
		in.OverdueRFIs = append(in.OverdueRFIs, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanPendingCOs(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT co_id, number, amount, dateDiff('day', submitted_at, now())
        FROM buildpulse.change_orders FINAL
        WHERE status = 'pending' AND submitted_at < now() - INTERVAL 14 DAY
        ORDER BY co_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("pending_cos", err)
		return fmt.Errorf("get pending change orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.PendingChangeOrder
		if err := rows.Scan(&r.ID, &r.Number, &r.Amount, &r.DaysPending); err != nil {
			return fmt.Errorf("scan change order: %w", err)
		}
		in.PendingChangeOrders = append(in.PendingChangeOrders, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanOverdueEquipment(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT equipment_id, name,
               dateDiff('day', last_serviced_at, now()) - service_interval_days
        FROM buildpulse.equipment FINAL
        WHERE dateDiff('day', last_serviced_at, now()) > service_interval_days
        ORDER BY equipment_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("overdue_equipment", err)
		return fmt.Errorf("get overdue equipment: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.OverdueEquipment
		if err := rows.Scan(&r.ID, &r.Name, &r.DaysOverdue); err != nil {
			return fmt.Errorf("scan equipment: %w", err)
		}
		in.OverdueEquipment = append(in.OverdueEquipment, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) scanOverdueTasks(ctx context.Context, in *models.AnomalyDetectionInput) error {
	const q = `
        SELECT task_id, name, project_name, dateDiff('day', due_at, now())
        FROM buildpulse.tasks FINAL
        WHERE status != 'done' AND due_at < now()
        ORDER BY task_id
    `
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		s.logErr("overdue_tasks", err)
		return fmt.Errorf("get overdue tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r models.OverdueTask
		if err := rows.Scan(&r.ID, &r.Name, &r.ProjectName, &r.DaysOverdue); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		in.OverdueTasks = append(in.OverdueTasks, r)
	}
	return rows.Err()
}

func (s *CHSnapshotStore) logErr(op string, err error, fields ...applogger.Field) {
	if s.l == nil {
		return
	}
	fields = append(fields, applogger.Error(err))
	s.l.Error("clickhouse "+op+" error", fields...)
}

func (s *CHSnapshotStore) logOK(op string, start time.Time, fields ...applogger.Field) {
	if s.l == nil {
		return
	}
	fields = append(fields, applogger.Duration("duration_ms", time.Since(start)))
	s.l.Debug("clickhouse "+op+" ok", fields...)
}
