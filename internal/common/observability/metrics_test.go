package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *metric.ManualReader) metricdata.ScopeMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	return rm.ScopeMetrics[0]
}

func findMetric(sm metricdata.ScopeMetrics, name string) (metricdata.Metrics, bool) {
	for _, m := range sm.Metrics {
		if m.Name == name {
			return m, true
		}
	}
	return metricdata.Metrics{}, false
}

func TestRecordJobProcessed_FeedsDefaultInstruments(t *testing.T) {
	reader := metric.NewManualReader()
	newWithReader("observability-test", reader)

	RecordJobProcessed(context.Background(), "score-recovery", "completed")
	RecordJobProcessed(context.Background(), "score-recovery", "completed")
	RecordJobProcessed(context.Background(), "score-recovery", "failed")

	sm := collect(t, reader)
	m, ok := findMetric(sm, "jobs.processed")
	require.True(t, ok, "jobs.processed not exported")

	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
		taskType, _ := dp.Attributes.Value("task_type")
		assert.Equal(t, "score-recovery", taskType.AsString())
	}
	assert.Equal(t, int64(3), total)
}

func TestRecordJobDuration_FeedsDefaultHistogram(t *testing.T) {
	reader := metric.NewManualReader()
	newWithReader("observability-test", reader)

	RecordJobDuration(context.Background(), "sync-telemetry", 250*time.Millisecond, "completed")

	sm := collect(t, reader)
	m, ok := findMetric(sm, "jobs.duration")
	require.True(t, ok, "jobs.duration not exported")

	hist, ok := m.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 250.0, hist.DataPoints[0].Sum, 1e-9)
}

func TestRecordFunctions_NoOpBeforeInit(t *testing.T) {
	defaultObs = &Observability{}

	assert.NotPanics(t, func() {
		RecordJobProcessed(context.Background(), "score-recovery", "completed")
		RecordJobDuration(context.Background(), "score-recovery", time.Second, "completed")
	})
}
