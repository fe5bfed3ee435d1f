package repository

import (
	"context"

	"DashPull/internal/domain/models"
)

// DocumentSource loads a fetched dashboard document.
type DocumentSource[T any] interface {
	Load(ctx context.Context) (*T, error)
	Name() string
}

// FMCGSource loads the FMCG cost-pressure document.
type FMCGSource = DocumentSource[models.FMCGDocument]

// AnalyticsSource loads the omnirag analytics document.
type AnalyticsSource = DocumentSource[models.AnalyticsDocument]

// PopulationSource provides the enriched churn population.
type PopulationSource interface {
	Population(ctx context.Context) (*models.Population, error)
}

// EventPublisher ships domain events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
	Close() error
}

// Metrics records pipeline and relay observations.
type Metrics interface {
	RecordDatasetLoad(source, outcome string)
	RecordDegraded(dashboard, kind string)
	RecordBuild(dashboard string, seconds float64)
	RecordRelay(outcome string, seconds float64)
	RecordError(kind string)
}
