package liam

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// clientMetrics records request counts, latency, and in-flight gauge via
// the OpenTelemetry metric API. The host application decides whether a
// meter provider is installed; without one these are no-ops.
type clientMetrics struct {
	requestsTotal metric.Int64Counter
	requestDur    metric.Float64Histogram
	inFlight      metric.Int64UpDownCounter
}

func newClientMetrics(logger *zap.Logger) *clientMetrics {
	m := &clientMetrics{}
	meter := otel.Meter(instrumentationName)

	var err error
	m.requestsTotal, err = meter.Int64Counter(
		"liam.client.requests_total",
		metric.WithDescription("Total API requests labeled by endpoint and status code. Status 0 means a network-level failure."),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		logger.Warn("failed to create requests counter", zap.Error(err))
	}

	m.requestDur, err = meter.Float64Histogram(
		"liam.client.request_duration_seconds",
		metric.WithDescription("API request duration in seconds, labeled by endpoint and status code."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		logger.Warn("failed to create duration histogram", zap.Error(err))
	}

	m.inFlight, err = meter.Int64UpDownCounter(
		"liam.client.active_requests",
		metric.WithDescription("Number of currently in-flight API requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		logger.Warn("failed to create active requests gauge", zap.Error(err))
	}

	return m
}

func (m *clientMetrics) requestStarted(ctx context.Context) {
	if m.inFlight != nil {
		m.inFlight.Add(ctx, 1)
	}
}

func (m *clientMetrics) requestFinished(ctx context.Context, endpoint string, statusCode int, dur time.Duration) {
	if m.inFlight != nil {
		m.inFlight.Add(ctx, -1)
	}
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.Int("status_code", statusCode),
	)
	if m.requestsTotal != nil {
		m.requestsTotal.Add(ctx, 1, attrs)
	}
	if m.requestDur != nil {
		m.requestDur.Record(ctx, dur.Seconds(), attrs)
	}
}
