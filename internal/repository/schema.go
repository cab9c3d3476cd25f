package repository

// SchemaStatements are the idempotent DDL statements run at startup. The
// sync pipeline upserts rows keyed by entity id; ReplacingMergeTree plus
// FINAL reads give last-write-wins semantics.
var SchemaStatements = []string{
	`CREATE DATABASE IF NOT EXISTS buildpulse`,
	`CREATE TABLE IF NOT EXISTS buildpulse.projects (
        project_id String,
        name String,
        status String,
        budget Float64,
        actual_cost Float64,
        completion_pct Float64,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY project_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.cash_accounts (
        account_id String,
        balance Float64,
        monthly_burn_rate Float64,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY account_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.open_invoices (
        invoice_id String,
        side String,
        open_balance Float64,
        days_overdue Int32,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY invoice_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.invoices (
        invoice_id String,
        number String,
        vendor_name String,
        amount Float64,
        status String,
        journal_entry_id String,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY invoice_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.budget_lines (
        line_id String,
        name String,
        budget Float64,
        actual Float64,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY line_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.journal_entries (
        entry_id String,
        number String,
        status String,
        created_at DateTime,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY entry_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.safety_incidents (
        incident_id String,
        severity String,
        occurred_at DateTime
    ) ENGINE = MergeTree
    ORDER BY (occurred_at, incident_id)`,
	`CREATE TABLE IF NOT EXISTS buildpulse.inspections (
        inspection_id String,
        score Float64,
        inspected_at DateTime
    ) ENGINE = MergeTree
    ORDER BY (inspected_at, inspection_id)`,
	`CREATE TABLE IF NOT EXISTS buildpulse.certifications (
        cert_id String,
        name String,
        holder_name String,
        expires_at DateTime,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY cert_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.vendor_stats (
        vendor_id String,
        on_time_delivery_pct Float64,
        change_order_count Int32,
        total_contracts Int32,
        safety_incidents Int32,
        invoice_accuracy_pct Float64,
        avg_response_days Float64,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY vendor_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.equipment (
        equipment_id String,
        name String,
        purchased_at DateTime,
        usage_hours Float64,
        maintenance_count Int32,
        last_serviced_at DateTime,
        service_interval_days Int32,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY equipment_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.rfis (
        rfi_id String,
        number String,
        subject String,
        status String,
        submitted_at DateTime,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY rfi_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.change_orders (
        co_id String,
        number String,
        amount Float64,
        status String,
        submitted_at DateTime,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY co_id`,
	`CREATE TABLE IF NOT EXISTS buildpulse.tasks (
        task_id String,
        name String,
        project_name String,
        status String,
        due_at DateTime,
        updated_at DateTime DEFAULT now()
    ) ENGINE = ReplacingMergeTree(updated_at)
    ORDER BY task_id`,
}
