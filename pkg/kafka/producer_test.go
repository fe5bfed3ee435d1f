package kafka

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducerRequiresBrokers(t *testing.T) {
	_, err := NewProducer()
	assert.Error(t, err)

	p, err := NewProducer(WithBrokers([]string{"localhost:9092"}), WithRegisterer(prometheus.NewRegistry()), WithHashByKey(true))
	require.NoError(t, err)
	assert.IsType(t, &kafka.Hash{}, p.writer.Balancer)
	assert.NoError(t, p.Close())
}

func TestEncodeValue(t *testing.T) {
	b, err := encodeValue(map[string]string{"theme": "light"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"theme":"light"}`, string(b))

	b, _ = encodeValue("raw")
	assert.Equal(t, "raw", string(b))

	_, err = encodeValue(func() {})
	assert.Error(t, err)
}

func TestParseCompression(t *testing.T) {
	assert.Equal(t, kafka.Snappy, parseCompression("snappy"))
	assert.Equal(t, kafka.Zstd, parseCompression("zstd"))
	assert.Equal(t, kafka.Gzip, parseCompression("bogus"))
}
