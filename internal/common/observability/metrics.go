package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

type Observability struct {
	meterProvider  *metric.MeterProvider
	meter          otelmetric.Meter
	analysisCount  otelmetric.Int64Counter
	analysisTiming otelmetric.Float64Histogram
	tracing        *Tracing
}

func New(serviceName string) *Observability {
	o := &Observability{tracing: NewTracing(serviceName)}

	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	analysisCount, _ := meter.Int64Counter(
		"analysis.processed",
		otelmetric.WithDescription("Number of analyses processed"),
	)

	analysisTiming, _ := meter.Float64Histogram(
		"analysis.duration",
		otelmetric.WithDescription("Analysis duration"),
		otelmetric.WithUnit("ms"),
	)

	o.meterProvider = provider
	o.meter = meter
	o.analysisCount = analysisCount
	o.analysisTiming = analysisTiming
	return o
}

// Tracer returns the tracing half; never nil.
func (o *Observability) Tracer() *Tracing {
	if o == nil || o.tracing == nil {
		return NewTracing("noop")
	}
	return o.tracing
}

func (o *Observability) RecordAnalysis(ctx context.Context, tier string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(attribute.String("tier", tier))
	if o.analysisCount != nil {
		o.analysisCount.Add(ctx, 1, attrs)
	}
	if o.analysisTiming != nil {
		o.analysisTiming.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if o.meterProvider != nil {
		o.meterProvider.Shutdown(ctx)
	}
	o.tracing.Shutdown(ctx)
}
