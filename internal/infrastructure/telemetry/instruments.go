package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys carried by institute metrics.
var (
	AttrCenterID          = attribute.Key("center_id")
	AttrPaymentMethod     = attribute.Key("payment_method")
	AttrPaymentOutcome    = attribute.Key("payment_outcome")
	AttrFeeStatus         = attribute.Key("fee_status")
	AttrResultStatus      = attribute.Key("result_status")
	AttrGrade             = attribute.Key("grade")
	AttrCertificateStatus = attribute.Key("certificate_status")
)

// PercentageBuckets bucket exam percentages in steps of ten.
var PercentageBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

type Counter struct {
	inner metric.Int64Counter
}

func NewCounter(meter metric.Meter, name, description, unit string) (*Counter, error) {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		return nil, fmt.Errorf("counter %s: %w", name, err)
	}
	return &Counter{inner: c}, nil
}

func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.inner.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// HistogramOpts describes a float64 histogram. Empty Boundaries keep the
// SDK defaults.
type HistogramOpts struct {
	Name        string
	Description string
	Unit        string
	Boundaries  []float64
}

type Histogram struct {
	inner metric.Float64Histogram
}

func NewHistogram(meter metric.Meter, opts HistogramOpts) (*Histogram, error) {
	options := []metric.Float64HistogramOption{
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	}
	if len(opts.Boundaries) > 0 {
		options = append(options, metric.WithExplicitBucketBoundaries(opts.Boundaries...))
	}
	h, err := meter.Float64Histogram(opts.Name, options...)
	if err != nil {
		return nil, fmt.Errorf("histogram %s: %w", opts.Name, err)
	}
	return &Histogram{inner: h}, nil
}

func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	h.inner.Record(ctx, value, metric.WithAttributes(attrs...))
}
