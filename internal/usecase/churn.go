package usecase

import (
	"context"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/services/chart"
	"DashPull/internal/services/derive"
	"DashPull/internal/services/prefs"
	"DashPull/internal/services/query"
	applogger "DashPull/pkg/logger"
)

// ChurnUseCase renders the churn reactivation dashboard.
type ChurnUseCase struct {
	source domrepo.PopulationSource
	pipe   pipeline[models.Population]
	style  styler
}

func NewChurnUseCase(source domrepo.PopulationSource, store *prefs.Store, metrics domrepo.Metrics, l *applogger.Logger) *ChurnUseCase {
	return &ChurnUseCase{
		source: source,
		pipe: pipeline[models.Population]{
			dashboard: models.DashboardChurn,
			load:      source.Population,
			metrics:   metrics,
			logger:    loggerOrNop(l),
		},
		style: styler{store: store},
	}
}

// Query filters the population without building figures.
func (uc *ChurnUseCase) Query(ctx context.Context, f models.ChurnFilter) (query.Result, error) {
	pop, err := uc.source.Population(ctx)
	if err != nil {
		return query.Result{State: query.StateNotLoaded}, err
	}
	return query.Run(pop, f), nil
}

func (uc *ChurnUseCase) View(ctx context.Context, req models.ChurnRequest) *View {
	style := uc.style.resolve(req.StyleRequest)
	return uc.pipe.run(ctx, style, func(pop *models.Population, style chart.Style) *View {
		res := query.Run(pop, req.ChurnFilter)
		v := &View{
			KPIs:    chart.ChurnKPIs(res.Count, res.TotalROI, style),
			Figures: chart.Churn(res.Records, style),
			Meta: map[string]any{
				"state":     res.State,
				"count":     res.Count,
				"total_roi": res.TotalROI,
			},
		}
		if pop != nil {
			v.Meta["thresholds"] = pop.Thresholds
			v.Meta["segments"] = derive.Summarize(pop.Customers)
		}
		if res.State == query.StateEmpty {
			v.Status = models.StatusEmpty
		}
		return v
	})
}
