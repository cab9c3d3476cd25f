package predictive

import (
	"fmt"
	"sort"
	"strings"

	"BuildPulse/internal/domain/models"
)

// Severity thresholds per anomaly category.
const (
	unlinkedInvoiceCriticalAmount = 50000
	budgetUsageCriticalPct        = 100
	budgetUsageWarningPct         = 95
	staleDraftCriticalDays        = 30
	certExpiryWarningDays         = 14
	rfiCriticalDays               = 30
	rfiWarningDays                = 14
	changeOrderCriticalDays       = 30
	changeOrderCriticalAmount     = 100000
	changeOrderWarningDays        = 14
	equipmentCriticalDays         = 30
	equipmentWarningDays          = 7
	taskCriticalDays              = 14
	taskWarningDays               = 7
)

var severityRank = map[string]int{
	models.SeverityCritical: 0,
	models.SeverityWarning:  1,
	models.SeverityInfo:     2,
}

// DetectAnomalies fans out over the eight raw record lists and emits one
// alert per record, ranked critical > warning > info. Sorting is stable, so
// within a severity tier alerts keep category emission order. Alert ids are
// slugs of the source record identity and are stable across runs.
func DetectAnomalies(in models.AnomalyDetectionInput) []models.AlertItem {
	alerts := make([]models.AlertItem, 0,
		len(in.UnlinkedInvoices)+len(in.BudgetOverruns)+len(in.StaleDrafts)+
			len(in.ExpiringCerts)+len(in.OverdueRFIs)+len(in.PendingChangeOrders)+
			len(in.OverdueEquipment)+len(in.OverdueTasks))

	for _, inv := range in.UnlinkedInvoices {
		severity := models.SeverityWarning
		if inv.Amount > unlinkedInvoiceCriticalAmount {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "unlinked-invoice-" + Slug(inv.Number),
			Category:    models.CategoryFinancial,
			Severity:    severity,
			Title:       fmt.Sprintf("Invoice %s has no journal entry", inv.Number),
			Description: fmt.Sprintf("Invoice %s from %s (%s) is not linked to a journal entry.", inv.Number, inv.VendorName, FormatCurrency(inv.Amount)),
			Metric:      inv.Amount,
			ActionURL:   "/invoices/" + inv.ID,
		})
	}

	for _, line := range in.BudgetOverruns {
		pctUsed := 100.0
		if line.Budget > 0 {
			pctUsed = line.Actual / line.Budget * 100
		}
		severity := models.SeverityInfo
		switch {
		case pctUsed >= budgetUsageCriticalPct:
			severity = models.SeverityCritical
		case pctUsed >= budgetUsageWarningPct:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "budget-overrun-" + Slug(line.Name),
			Category:    models.CategoryFinancial,
			Severity:    severity,
			Title:       fmt.Sprintf("Budget line %s at %.1f%% spent", line.Name, pctUsed),
			Description: fmt.Sprintf("%s has spent %s of its %s budget.", line.Name, FormatCurrency(line.Actual), FormatCurrency(line.Budget)),
			Metric:      Round2(pctUsed),
			ActionURL:   "/budgets/" + line.ID,
		})
	}

	for _, draft := range in.StaleDrafts {
		severity := models.SeverityWarning
		if draft.DaysInDraft > staleDraftCriticalDays {
			severity = models.SeverityCritical
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "stale-draft-" + Slug(draft.Number),
			Category:    models.CategoryFinancial,
			Severity:    severity,
			Title:       fmt.Sprintf("Journal entry %s in draft for %d days", draft.Number, draft.DaysInDraft),
			Description: fmt.Sprintf("Journal entry %s has been sitting in draft state for %d days.", draft.Number, draft.DaysInDraft),
			Metric:      float64(draft.DaysInDraft),
			ActionURL:   "/journal-entries/" + draft.ID,
		})
	}

	for _, cert := range in.ExpiringCerts {
		severity := models.SeverityInfo
		title := fmt.Sprintf("Certification %s expires in %d days", cert.Name, cert.DaysUntilExpiry)
		switch {
		case cert.DaysUntilExpiry < 0:
			severity = models.SeverityCritical
			title = fmt.Sprintf("Certification %s has expired", cert.Name)
		case cert.DaysUntilExpiry <= certExpiryWarningDays:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "cert-expiry-" + Slug(cert.HolderName) + "-" + Slug(cert.Name),
			Category:    models.CategorySafety,
			Severity:    severity,
			Title:       title,
			Description: fmt.Sprintf("%s held by %s.", cert.Name, cert.HolderName),
			Metric:      float64(cert.DaysUntilExpiry),
			ActionURL:   "/certifications/" + cert.ID,
		})
	}

	for _, rfi := range in.OverdueRFIs {
		severity := models.SeverityInfo
		switch {
		case rfi.DaysPending > rfiCriticalDays:
			severity = models.SeverityCritical
		case rfi.DaysPending > rfiWarningDays:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "overdue-rfi-" + Slug(rfi.Number),
			Category:    models.CategoryProject,
			Severity:    severity,
			Title:       fmt.Sprintf("RFI %s pending for %d days", rfi.Number, rfi.DaysPending),
			Description: fmt.Sprintf("RFI %s (%s) is awaiting a response.", rfi.Number, rfi.Subject),
			Metric:      float64(rfi.DaysPending),
			ActionURL:   "/rfis/" + rfi.ID,
		})
	}

	for _, co := range in.PendingChangeOrders {
		severity := models.SeverityInfo
		switch {
		case co.DaysPending > changeOrderCriticalDays || co.Amount > changeOrderCriticalAmount:
			severity = models.SeverityCritical
		case co.DaysPending > changeOrderWarningDays:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "pending-co-" + Slug(co.Number),
			Category:    models.CategoryFinancial,
			Severity:    severity,
			Title:       fmt.Sprintf("Change order %s pending approval for %d days", co.Number, co.DaysPending),
			Description: fmt.Sprintf("Change order %s (%s) is awaiting approval.", co.Number, FormatCurrency(co.Amount)),
			Metric:      co.Amount,
			ActionURL:   "/change-orders/" + co.ID,
		})
	}

	for _, eq := range in.OverdueEquipment {
		severity := models.SeverityInfo
		switch {
		case eq.DaysOverdue > equipmentCriticalDays:
			severity = models.SeverityCritical
		case eq.DaysOverdue > equipmentWarningDays:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "equipment-service-" + Slug(eq.Name),
			Category:    models.CategoryEquipment,
			Severity:    severity,
			Title:       fmt.Sprintf("%s overdue for service by %d days", eq.Name, eq.DaysOverdue),
			Description: fmt.Sprintf("%s is past its scheduled service date.", eq.Name),
			Metric:      float64(eq.DaysOverdue),
			ActionURL:   "/equipment/" + eq.ID,
		})
	}

	for _, task := range in.OverdueTasks {
		severity := models.SeverityInfo
		switch {
		case task.DaysOverdue > taskCriticalDays:
			severity = models.SeverityCritical
		case task.DaysOverdue > taskWarningDays:
			severity = models.SeverityWarning
		}
		alerts = append(alerts, models.AlertItem{
			ID:          "overdue-task-" + Slug(task.Name),
			Category:    models.CategoryProject,
			Severity:    severity,
			Title:       fmt.Sprintf("Task %q overdue by %d days", task.Name, task.DaysOverdue),
			Description: fmt.Sprintf("Task %q on %s is past its due date.", task.Name, task.ProjectName),
			Metric:      float64(task.DaysOverdue),
			ActionURL:   "/tasks/" + task.ID,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return severityRank[alerts[i].Severity] < severityRank[alerts[j].Severity]
	})
	return alerts
}

// Slug lowercases s and collapses runs of non-alphanumerics into single
// hyphens, producing stable, URL-safe alert id fragments.
func Slug(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
