package hubspot

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/icco/gamecrm/hubspot"

type clientMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// newClientMetrics registers instruments on the global meter provider. The
// global provider delegates, so a provider installed later still receives
// these. Instrument errors leave a nil field and that metric is skipped.
func newClientMetrics() *clientMetrics {
	meter := otel.Meter(meterName)
	m := &clientMetrics{}

	requests, err := meter.Int64Counter("gamecrm.crm.requests",
		metric.WithDescription("Calls made to the HubSpot objects API"),
		metric.WithUnit("{request}"),
	)
	if err == nil {
		m.requests = requests
	}

	duration, err := meter.Float64Histogram("gamecrm.crm.duration",
		metric.WithDescription("Latency of calls to the HubSpot objects API"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10),
	)
	if err == nil {
		m.duration = duration
	}

	return m
}

// record notes one call. status is 0 when no response came back.
func (m *clientMetrics) record(ctx context.Context, op string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("status_code", strconv.Itoa(status)),
	)
	if m.requests != nil {
		m.requests.Add(ctx, 1, attrs)
	}
	if m.duration != nil {
		m.duration.Record(ctx, elapsed.Seconds(), attrs)
	}
}
