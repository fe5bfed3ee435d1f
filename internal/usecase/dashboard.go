package usecase

import (
	"context"
	"errors"
	"time"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/services/prefs"
	applogger "DashPull/pkg/logger"
)

// View is one rendered dashboard: figures plus the headline numbers.
type View struct {
	Dashboard string         `json:"dashboard"`
	Status    string         `json:"status"`
	Notice    string         `json:"notice,omitempty"`
	Style     chart.Style    `json:"style"`
	KPIs      []models.KPI   `json:"kpis"`
	Insight   *chart.Insight `json:"insight,omitempty"`
	Figures   []chart.Figure `json:"figures"`
	Meta      map[string]any `json:"meta,omitempty"`
}

// Degraded reports whether the view was built from placeholders.
func (v *View) Degraded() bool { return v.Status == models.StatusDegraded }

// buildFunc turns a loaded document (nil when loading failed) into a view.
type buildFunc[D any] func(doc *D, style chart.Style) *View

// pipeline is the load → derive → build sequence shared by every dashboard.
type pipeline[D any] struct {
	dashboard string
	load      func(ctx context.Context) (*D, error)
	metrics   domrepo.Metrics
	logger    *applogger.Logger
}

func (p *pipeline[D]) run(ctx context.Context, style chart.Style, build buildFunc[D]) *View {
	start := time.Now()
	defer func() {
		if p.metrics != nil {
			p.metrics.RecordBuild(p.dashboard, time.Since(start).Seconds())
		}
	}()

	doc, err := p.load(ctx)
	if err != nil {
		kind := failureKind(err)
		p.logger.Warn("dashboard degraded",
			applogger.String("dashboard", p.dashboard),
			applogger.String("kind", kind),
			applogger.Error(err),
		)
		if p.metrics != nil {
			p.metrics.RecordDegraded(p.dashboard, kind)
			p.metrics.RecordError(kind)
		}
		v := build(nil, style)
		v.Dashboard = p.dashboard
		v.Status = models.StatusDegraded
		v.Notice = chart.Text(style.Lang, "notice."+kind)
		v.Style = style
		return v
	}

	v := build(doc, style)
	v.Dashboard = p.dashboard
	v.Style = style
	if v.Status == "" {
		v.Status = models.StatusOK
	}
	return v
}

func failureKind(err error) string {
	if errors.Is(err, models.ErrMalformedData) {
		return "malformed"
	}
	return "unavailable"
}

// styler resolves request overrides against the preference store.
type styler struct {
	store *prefs.Store
}

func (s styler) resolve(req models.StyleRequest) chart.Style {
	theme, lang := req.Theme, req.Lang
	if s.store != nil {
		cur := s.store.Current()
		if theme == "" {
			theme = cur.Theme
		}
		if lang == "" {
			lang = cur.Lang
		}
	}
	return chart.NewStyle(theme, lang)
}

func loggerOrNop(l *applogger.Logger) *applogger.Logger {
	if l == nil {
		return applogger.Nop()
	}
	return l
}
