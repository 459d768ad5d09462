package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/trace/noop"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestLedgerMetrics_RecordsOperations(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	lm, err := NewLedgerMetrics(mp, noop.NewTracerProvider())
	require.NoError(t, err)

	_, done := lm.Start(context.Background(), OpBatch)
	done(OutcomeCommitted, 3)
	_, done = lm.Start(context.Background(), OpCreate)
	done(OutcomeForbidden, 0)

	metrics := collect(t, reader)

	ops, ok := metrics["ledger.operations"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, ops.DataPoints, 2)
	for _, dp := range ops.DataPoints {
		assert.Equal(t, int64(1), dp.Value)
	}

	rows, ok := metrics["ledger.transactions.written"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, rows.DataPoints, 1)
	assert.Equal(t, int64(3), rows.DataPoints[0].Value)
	op, _ := rows.DataPoints[0].Attributes.Value(attribute.Key("operation"))
	assert.Equal(t, OpBatch, op.AsString())

	hist, ok := metrics["ledger.operation.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	assert.Len(t, hist.DataPoints, 2)
}

func TestLedgerMetrics_FailedWritesAreNotCounted(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	lm, err := NewLedgerMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), nil)
	require.NoError(t, err)

	_, done := lm.Start(context.Background(), OpUpdate)
	done(OutcomeFailed, 1)

	metrics := collect(t, reader)
	_, found := metrics["ledger.transactions.written"]
	assert.False(t, found)
}

func TestLedgerMetrics_NilIsNoop(t *testing.T) {
	var lm *LedgerMetrics
	ctx := context.Background()

	got, done := lm.Start(ctx, OpDelete)

	assert.Equal(t, ctx, got)
	assert.NotPanics(t, func() { done(OutcomeFailed, 0) })
}
