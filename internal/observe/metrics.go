// Package observe provides application-wide observability primitives for
// Respeak: OpenTelemetry metrics, distributed tracing, structured logging,
// and HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can still be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Respeak metrics.
const meterName = "github.com/MrWong99/respeak"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// EditDuration tracks end-to-end latency of one dispatched edit, from
	// message receipt to the reassembled document. Use with attribute:
	//   attribute.String("mode", ...)
	EditDuration metric.Float64Histogram

	// Edits counts dispatched edits. Use with attributes:
	//   attribute.String("mode", ...), attribute.String("status", ...)
	// Status is "ok" for accepted edits and the drop reason otherwise
	// ("empty_content", "target_not_found").
	Edits metric.Int64Counter

	// RuleApplications counts replacement edits by the grammar-repair rule
	// that fired. Use with attribute:
	//   attribute.String("rule", ...)
	// Plain swaps with no matching rule record rule="fallback", keeping
	// rule-driven and fallback edits distinguishable.
	RuleApplications metric.Int64Counter

	// Corrections counts spoken-content words rewritten by the phonetic
	// vocabulary corrector before dispatch.
	Corrections metric.Int64Counter

	// HistoryOps counts undo/redo requests. Use with attributes:
	//   attribute.String("op", ...), attribute.String("status", ...)
	// Status is "ok" or "boundary" for no-ops at the history bounds.
	HistoryOps metric.Int64Counter

	// ActiveSessions tracks the number of live editing sessions.
	ActiveSessions metric.Int64UpDownCounter

	// HTTPRequestDuration tracks HTTP request processing time. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// editBuckets defines histogram bucket boundaries (in seconds) for the edit
// pipeline, which runs in memory and completes in well under a millisecond
// for normal documents.
var editBuckets = []float64{
	0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.EditDuration, err = m.Float64Histogram("respeak.edit.duration",
		metric.WithDescription("Latency of one dispatched edit by mode."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(editBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.Edits, err = m.Int64Counter("respeak.edits",
		metric.WithDescription("Total dispatched edits by mode and status."),
	); err != nil {
		return nil, err
	}
	if met.RuleApplications, err = m.Int64Counter("respeak.rule.applications",
		metric.WithDescription("Total replacement edits by grammar-repair rule."),
	); err != nil {
		return nil, err
	}
	if met.Corrections, err = m.Int64Counter("respeak.vocab.corrections",
		metric.WithDescription("Total spoken-content corrections applied before dispatch."),
	); err != nil {
		return nil, err
	}
	if met.HistoryOps, err = m.Int64Counter("respeak.history.ops",
		metric.WithDescription("Total undo/redo requests by operation and status."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveSessions, err = m.Int64UpDownCounter("respeak.active_sessions",
		metric.WithDescription("Number of live editing sessions."),
	); err != nil {
		return nil, err
	}

	// HTTP middleware histogram.
	if met.HTTPRequestDuration, err = m.Float64Histogram("respeak.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordEdit records one dispatched edit: a counter increment with mode and
// status plus, for accepted edits, the duration histogram sample.
func (m *Metrics) RecordEdit(ctx context.Context, mode, status string, seconds float64) {
	m.Edits.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("mode", mode),
			attribute.String("status", status),
		),
	)
	if status == "ok" {
		m.EditDuration.Record(ctx, seconds,
			metric.WithAttributes(attribute.String("mode", mode)),
		)
	}
}

// RecordRule records which grammar-repair rule a replacement edit used.
// Pass "fallback" for plain swaps where no rule matched.
func (m *Metrics) RecordRule(ctx context.Context, rule string) {
	if rule == "" {
		rule = "fallback"
	}
	m.RuleApplications.Add(ctx, 1,
		metric.WithAttributes(attribute.String("rule", rule)),
	)
}

// RecordHistoryOp records an undo or redo request and whether it hit the
// history boundary.
func (m *Metrics) RecordHistoryOp(ctx context.Context, op string, ok bool) {
	status := "ok"
	if !ok {
		status = "boundary"
	}
	m.HistoryOps.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("op", op),
			attribute.String("status", status),
		),
	)
}
