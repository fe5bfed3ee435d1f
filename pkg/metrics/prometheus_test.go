package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordDatasetLoad("fmcg", "ok")
	r.RecordDatasetLoad("fmcg", "ok")
	r.RecordDegraded("omnirag", "unavailable")
	r.RecordError("relay")
	r.RecordBuild("churn", 0.01)
	r.RecordRelay("ok", 1.2)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.datasetLoads.WithLabelValues("fmcg", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.degraded.WithLabelValues("omnirag", "unavailable")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.errorsTotal.WithLabelValues("relay")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.buildLatency))
	assert.Equal(t, 1, testutil.CollectAndCount(r.relayLatency))
}
