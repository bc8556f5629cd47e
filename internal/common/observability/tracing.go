package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Tracing owns a tracer provider for analysis spans.
type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

func NewTracing(serviceName string, opts ...sdktrace.TracerProviderOption) *Tracing {
	provider := sdktrace.NewTracerProvider(opts...)
	return &Tracing{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
	}
}

// StartSpan opens a span with string attributes.
func (t *Tracing) StartSpan(ctx context.Context, name string, attrs map[string]string) (context.Context, trace.Span) {
	kv := make([]attribute.KeyValue, 0, len(attrs))
	for k, v := range attrs {
		kv = append(kv, attribute.String(k, v))
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(kv...))
}

// EndSpan records err, if any, and ends the span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (t *Tracing) Shutdown(ctx context.Context) {
	if t != nil && t.provider != nil {
		_ = t.provider.Shutdown(ctx)
	}
}
