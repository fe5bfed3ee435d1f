package repository

import (
	"context"
	"sync"
	"time"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/repository"
	"DashPull/internal/services/derive"
	"DashPull/internal/services/synth"
	applogger "DashPull/pkg/logger"
)

// PopulationSource synthesizes and enriches the churn population once per
// process. The result is shared read-only.
type PopulationSource struct {
	cfg     synth.Config
	rules   models.SegmentRules
	metrics repository.Metrics
	logger  *applogger.Logger

	once sync.Once
	pop  *models.Population
	err  error
}

// NewPopulationSource creates a lazy population source.
func NewPopulationSource(cfg synth.Config, rules models.SegmentRules, metrics repository.Metrics, l *applogger.Logger) *PopulationSource {
	if l == nil {
		l = applogger.Nop()
	}
	return &PopulationSource{cfg: cfg, rules: rules, metrics: metrics, logger: l}
}

func (s *PopulationSource) Population(_ context.Context) (*models.Population, error) {
	s.once.Do(func() {
		start := time.Now()
		customers, err := synth.Generate(s.cfg)
		if err != nil {
			s.err = err
			s.record(OutcomeUnavailable)
			return
		}
		s.pop = derive.BuildPopulation(customers, s.cfg.LowerQuantile, s.cfg.UpperQuantile, s.rules)
		s.record(OutcomeOK)
		s.logger.Info("churn population ready",
			applogger.Int("customers", len(s.pop.Customers)),
			applogger.Any("thresholds", s.pop.Thresholds),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	})
	return s.pop, s.err
}

func (s *PopulationSource) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordDatasetLoad("churn", outcome)
	}
}
