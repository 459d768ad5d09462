package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/SscSPs/finance_planner/ledger"

// Ledger operation names used as the "operation" attribute.
const (
	OpCreate = "create"
	OpBatch  = "batch_create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Outcomes used as the "outcome" attribute.
const (
	OutcomeCommitted = "committed"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeFailed    = "failed"
)

// LedgerMetrics records ledger operations. Create it with NewLedgerMetrics.
type LedgerMetrics struct {
	tracer     trace.Tracer
	operations metric.Int64Counter
	rows       metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewLedgerMetrics creates the ledger instruments on the given providers.
// Nil providers fall back to the global ones, which are no-ops until InitTelemetry runs.
func NewLedgerMetrics(mp metric.MeterProvider, tp trace.TracerProvider) (*LedgerMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(instrumentationName)

	operations, err := meter.Int64Counter("ledger.operations",
		metric.WithDescription("Ledger operations by operation and outcome"))
	if err != nil {
		return nil, err
	}
	rows, err := meter.Int64Counter("ledger.transactions.written",
		metric.WithDescription("Transaction rows inserted, updated or deleted by committed operations"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("ledger.operation.duration",
		metric.WithDescription("Ledger operation latency"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	return &LedgerMetrics{
		tracer:     tp.Tracer(instrumentationName),
		operations: operations,
		rows:       rows,
		duration:   duration,
	}, nil
}

// Start opens a span for a ledger operation. Call the returned func with the
// outcome and the number of rows written once the operation ends.
// A nil receiver records nothing.
func (m *LedgerMetrics) Start(ctx context.Context, op string) (context.Context, func(outcome string, written int)) {
	if m == nil {
		return ctx, func(string, int) {}
	}
	start := time.Now()
	ctx, span := m.tracer.Start(ctx, "ledger."+op, trace.WithAttributes(attribute.String("operation", op)))

	return ctx, func(outcome string, written int) {
		attrs := metric.WithAttributes(
			attribute.String("operation", op),
			attribute.String("outcome", outcome),
		)
		m.operations.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if outcome == OutcomeCommitted && written > 0 {
			m.rows.Add(ctx, int64(written), metric.WithAttributes(attribute.String("operation", op)))
		}
		span.SetAttributes(attribute.String("outcome", outcome))
		span.End()
	}
}
