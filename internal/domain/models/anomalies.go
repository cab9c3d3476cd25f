package models

// Alert severity tiers, ordered critical > warning > info for display.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Alert categories.
const (
	CategoryFinancial = "financial"
	CategorySafety    = "safety"
	CategoryProject   = "project"
	CategoryEquipment = "equipment"
)

// AlertItem is one prioritized, deduplicatable alert. ID is a deterministic
// slug derived from the source record, so re-running detection over the same
// snapshot yields the same ids.
type AlertItem struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Severity    string  `json:"severity"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Metric      float64 `json:"metric,omitempty"`
	ActionURL   string  `json:"action_url,omitempty"`
}

// UnlinkedInvoice is a posted invoice with no journal entry behind it.
type UnlinkedInvoice struct {
	ID         string
	Number     string
	VendorName string
	Amount     float64
}

// BudgetLineUsage is a budget line past the 90%-spent watch threshold.
type BudgetLineUsage struct {
	ID     string
	Name   string
	Budget float64
	Actual float64
}

// StaleDraftEntry is a journal entry left in draft state.
type StaleDraftEntry struct {
	ID          string
	Number      string
	DaysInDraft int
}

// ExpiringCertification is a worker certification nearing or past expiry.
// DaysUntilExpiry is negative once expired.
type ExpiringCertification struct {
	ID              string
	Name            string
	HolderName      string
	DaysUntilExpiry int
}

// OverdueRFI is a request-for-information awaiting response.
type OverdueRFI struct {
	ID          string
	Number      string
	Subject     string
	DaysPending int
}

// PendingChangeOrder is a change order awaiting approval.
type PendingChangeOrder struct {
	ID          string
	Number      string
	Amount      float64
	DaysPending int
}

// OverdueEquipment is a machine past its scheduled service date.
type OverdueEquipment struct {
	ID          string
	Name        string
	DaysOverdue int
}

// OverdueTask is a project task past its due date.
type OverdueTask struct {
	ID          string
	Name        string
	ProjectName string
	DaysOverdue int
}

// AnomalyDetectionInput carries the eight raw record lists scanned by the
// anomaly detector. Every list element becomes exactly one AlertItem.
type AnomalyDetectionInput struct {
	UnlinkedInvoices    []UnlinkedInvoice
	BudgetOverruns      []BudgetLineUsage
	StaleDrafts         []StaleDraftEntry
	ExpiringCerts       []ExpiringCertification
	OverdueRFIs         []OverdueRFI
	PendingChangeOrders []PendingChangeOrder
	OverdueEquipment    []OverdueEquipment
	OverdueTasks        []OverdueTask
}
