package models

// Requests for analytics HTTP endpoints. Defined in domain for consistency and reuse.

type OverrunRequest struct {
	ProjectID string `param:"id" json:"project_id" validate:"required"`
}

type CashFlowRequest struct {
	Periods int `query:"periods" json:"periods" default:"3" validate:"gte=1,lte=3"`
}

type VendorScoreRequest struct {
	VendorID string `param:"id" json:"vendor_id" validate:"required"`
}

type EquipmentFailureRequest struct {
	EquipmentID string `param:"id" json:"equipment_id" validate:"required"`
}

type AnomaliesRequest struct {
	Severity string `query:"severity" json:"severity" default:"" validate:"omitempty,oneof=info warning critical"`
	Category string `query:"category" json:"category" default:"" validate:"omitempty,oneof=financial safety project equipment"`
}
