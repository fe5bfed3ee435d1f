package usecase

import (
	"context"
	"fmt"
	"strings"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/services/prefs"
	applogger "DashPull/pkg/logger"
)

// OmniragUseCase renders the sales intelligence dashboard.
type OmniragUseCase struct {
	source domrepo.AnalyticsSource
	pipe   pipeline[models.AnalyticsDocument]
	style  styler
}

func NewOmniragUseCase(source domrepo.AnalyticsSource, store *prefs.Store, metrics domrepo.Metrics, l *applogger.Logger) *OmniragUseCase {
	return &OmniragUseCase{
		source: source,
		pipe: pipeline[models.AnalyticsDocument]{
			dashboard: models.DashboardOmnirag,
			load:      source.Load,
			metrics:   metrics,
			logger:    loggerOrNop(l),
		},
		style: styler{store: store},
	}
}

func (uc *OmniragUseCase) View(ctx context.Context, req models.OmniragRequest) *View {
	style := uc.style.resolve(req.StyleRequest)
	return uc.pipe.run(ctx, style, func(doc *models.AnalyticsDocument, style chart.Style) *View {
		return &View{
			KPIs:    chart.OmniragKPIs(doc, style),
			Figures: chart.Omnirag(doc, req.Category, style),
			Meta:    map[string]any{"category": req.Category},
		}
	})
}

// DataContext serializes the headline KPIs and the analytics narrative for
// the chat backend. A failed load yields "".
func (uc *OmniragUseCase) DataContext(ctx context.Context, lang string) string {
	doc, err := uc.source.Load(ctx)
	if err != nil || doc == nil {
		return ""
	}
	var b strings.Builder
	for _, k := range chart.OmniragKPIs(doc, chart.NewStyle("", lang)) {
		fmt.Fprintf(&b, "%s: %s\n", k.Label, k.Value)
	}
	if doc.LLMContext != "" {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(doc.LLMContext)
	}
	return b.String()
}
