package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"DashPull/internal/domain/models"
	"DashPull/internal/domain/repository"
	applogger "DashPull/pkg/logger"
)

//go:embed fallback_analytics.json
var fallbackAnalytics []byte

// AnalyticsSource serves the live analytics document and falls back to the
// embedded snapshot when the live one cannot be used.
type AnalyticsSource struct {
	live     repository.AnalyticsSource
	fallback []byte
	metrics  repository.Metrics
	logger   *applogger.Logger
}

// NewAnalyticsSource loads analytics.json from location with the embedded
// snapshot as fallback.
func NewAnalyticsSource(location string, opts ...LoaderOption) *AnalyticsSource {
	o := &loaderOptions{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = applogger.Nop()
	}
	return &AnalyticsSource{
		live:     NewDocumentLoader[models.AnalyticsDocument]("omnirag", location, CheckAnalytics, opts...),
		fallback: fallbackAnalytics,
		metrics:  o.metrics,
		logger:   o.logger,
	}
}

// WithFallback replaces the embedded snapshot; nil disables the fallback.
func (s *AnalyticsSource) WithFallback(raw []byte) *AnalyticsSource {
	s.fallback = raw
	return s
}

func (s *AnalyticsSource) Name() string { return s.live.Name() }

// Load returns the live document, or the fallback when the live load fails.
// Both failing is ErrDataUnavailable.
func (s *AnalyticsSource) Load(ctx context.Context) (*models.AnalyticsDocument, error) {
	doc, liveErr := s.live.Load(ctx)
	if liveErr == nil {
		return doc, nil
	}
	if ctx.Err() != nil {
		return nil, liveErr
	}
	if len(s.fallback) == 0 {
		return nil, liveErr
	}

	doc, err := Decode(s.Name(), s.fallback, CheckAnalytics)
	if err != nil {
		s.logger.Error("analytics fallback unusable", applogger.Error(err))
		return nil, models.Unavailable(s.Name(), errors.Join(liveErr, fmt.Errorf("fallback: %w", err)))
	}
	s.logger.Warn("analytics live data unavailable, using fallback", applogger.Error(liveErr))
	if s.metrics != nil {
		s.metrics.RecordDatasetLoad(s.Name(), OutcomeFallback)
	}
	return doc, nil
}

// CheckAnalytics requires the KPI block; list sections are typed by decoding.
func CheckAnalytics(doc *models.AnalyticsDocument) error {
	k := doc.KPIs
	if k.TotalRevenue == nil && k.TotalTransactions == nil && k.UniqueProducts == nil &&
		k.UniqueCities == nil && k.AvgPrice == nil && k.AvgSentiment == nil {
		return errors.New("kpis: missing")
	}
	for i, m := range doc.MonthlyTrend {
		if m.Month < 1 || m.Month > 12 {
			return fmt.Errorf("monthly_trend[%d]: month %d out of range", i, m.Month)
		}
	}
	return nil
}
