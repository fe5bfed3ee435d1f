package chart

import "DashPull/internal/domain/models"

// Tokens are the theme colors a figure is drawn with.
type Tokens struct {
	Text    string `json:"text"`
	Muted   string `json:"muted"`
	Grid    string `json:"grid"`
	TipBg   string `json:"tip_bg"`
	Border  string `json:"border"`
	Success string `json:"success"`
	Danger  string `json:"danger"`
}

const (
	ColorSuccess = "#10b981"
	ColorDanger  = "#ef4444"
)

var themes = map[string]map[string]Tokens{
	models.DashboardChurn: {
		models.ThemeDark:  {Text: "#f8fafc", Muted: "#94a3b8", Grid: "#334155", TipBg: "rgba(15,23,42,0.96)", Border: "#1e293b", Success: ColorSuccess, Danger: ColorDanger},
		models.ThemeLight: {Text: "#1e293b", Muted: "#64748b", Grid: "#e2e8f0", TipBg: "rgba(255,255,255,0.96)", Border: "#ffffff", Success: ColorSuccess, Danger: ColorDanger},
	},
	models.DashboardFMCG: {
		models.ThemeDark:  {Text: "#e0e3eb", Muted: "#8b92a5", Grid: "rgba(255,255,255,0.05)", TipBg: "rgba(15,23,42,0.96)", Border: "#0e1117", Success: ColorSuccess, Danger: ColorDanger},
		models.ThemeLight: {Text: "#1e293b", Muted: "#64748b", Grid: "rgba(0,0,0,0.06)", TipBg: "rgba(255,255,255,0.96)", Border: "#f6f7fb", Success: ColorSuccess, Danger: ColorDanger},
	},
	models.DashboardOmnirag: {
		models.ThemeDark:  {Text: "#c0c8d8", Muted: "#8b92a5", Grid: "rgba(255,255,255,.06)", TipBg: "rgba(14,17,23,.92)", Border: "#0e1117", Success: "#22c55e", Danger: ColorDanger},
		models.ThemeLight: {Text: "#4a5568", Muted: "#64748b", Grid: "rgba(0,0,0,.06)", TipBg: "rgba(255,255,255,.95)", Border: "#f6f7fb", Success: "#22c55e", Danger: ColorDanger},
	},
}

// ThemeTokens returns the tokens of a dashboard. Unknown dashboards use the
// churn tokens and unknown themes fall back to dark.
func ThemeTokens(dashboard, theme string) Tokens {
	set, ok := themes[dashboard]
	if !ok {
		set = themes[models.DashboardChurn]
	}
	if t, ok := set[theme]; ok {
		return t
	}
	return set[models.ThemeDark]
}
