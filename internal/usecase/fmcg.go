package usecase

import (
	"context"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/services/prefs"
	applogger "DashPull/pkg/logger"
)

// FMCGUseCase renders the FMCG cost-pressure dashboard.
type FMCGUseCase struct {
	pipe  pipeline[models.FMCGDocument]
	style styler
}

func NewFMCGUseCase(source domrepo.FMCGSource, store *prefs.Store, metrics domrepo.Metrics, l *applogger.Logger) *FMCGUseCase {
	return &FMCGUseCase{
		pipe: pipeline[models.FMCGDocument]{
			dashboard: models.DashboardFMCG,
			load:      source.Load,
			metrics:   metrics,
			logger:    loggerOrNop(l),
		},
		style: styler{store: store},
	}
}

func (uc *FMCGUseCase) View(ctx context.Context, req models.FMCGRequest) *View {
	style := uc.style.resolve(req.StyleRequest)
	commodity := req.Commodity
	if commodity == "" {
		commodity = models.AllCommodities
	}
	return uc.pipe.run(ctx, style, func(doc *models.FMCGDocument, style chart.Style) *View {
		v := &View{
			KPIs:    chart.FMCGKPIs(doc, commodity, style),
			Figures: chart.FMCG(doc, commodity, style),
			Meta:    map[string]any{"commodity": commodity},
		}
		if doc != nil {
			insight := chart.FMCGInsight(doc, commodity, style)
			v.Insight = &insight
		}
		return v
	})
}
