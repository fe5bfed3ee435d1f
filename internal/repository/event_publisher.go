package repository

import (
	"context"

	"DashPull/internal/domain/repository"
	pkgkafka "DashPull/pkg/kafka"
)

// KafkaPublisher implements EventPublisher on the shared producer.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer) repository.EventPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, topic, key string, value interface{}) error {
	return p.producer.Publish(ctx, topic, []byte(key), value)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, interface{}) error { return nil }

func (NopPublisher) Close() error { return nil }
