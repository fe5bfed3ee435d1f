package models

// View status values.
const (
	StatusOK       = "ok"
	StatusEmpty    = "empty"
	StatusDegraded = "degraded"
)

// Dashboard names.
const (
	DashboardChurn   = "churn"
	DashboardFMCG    = "fmcg"
	DashboardOmnirag = "omnirag"
)

// Dashboards lists the served dashboards.
var Dashboards = []string{DashboardChurn, DashboardFMCG, DashboardOmnirag}

// KPI is a single headline number.
type KPI struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

// StyleRequest carries the presentation overrides shared by dashboard requests.
type StyleRequest struct {
	Lang  string `query:"lang"`
	Theme string `query:"theme"`
}

// ChurnRequest binds /api/dashboards/churn.
type ChurnRequest struct {
	ChurnFilter
	StyleRequest
}

// FMCGRequest binds /api/dashboards/fmcg.
type FMCGRequest struct {
	FMCGFilter
	StyleRequest
}

// OmniragRequest binds /api/dashboards/omnirag.
type OmniragRequest struct {
	OmniragFilter
	StyleRequest
}
