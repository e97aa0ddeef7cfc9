package render

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/zielvna/serwer/render"

// TracingContext returns a copy of ctx carrying provider. Spans started by
// Render and the build use it instead of the global provider.
func TracingContext(ctx context.Context, provider trace.TracerProvider) context.Context {
	return context.WithValue(ctx, tracerProviderCtxKey, provider)
}

// TracerProvider returns the provider stored by TracingContext, falling back
// to the global one.
func TracerProvider(ctx context.Context) trace.TracerProvider {
	if provider, ok := ctx.Value(tracerProviderCtxKey).(trace.TracerProvider); ok && provider != nil {
		return provider
	}
	return otel.GetTracerProvider()
}

// Tracer returns the tracer Render starts its spans with.
func Tracer(ctx context.Context) trace.Tracer {
	return TracerProvider(ctx).Tracer(instrumentationName)
}
