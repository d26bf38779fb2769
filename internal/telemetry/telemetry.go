// Package telemetry configures OpenTelemetry tracing for the gateway.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/spiffcs/goodfirst/internal/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc flushes and stops the tracer provider
type ShutdownFunc func(context.Context) error

// Tracer returns the tracer used for gateway spans. Before InitTracing runs
// (or when tracing is disabled) it is backed by the global no-op provider.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/spiffcs/goodfirst")
}

// InitTracing installs an OTLP/gRPC tracer provider exporting to endpoint.
// An empty endpoint leaves tracing disabled and returns a no-op shutdown.
func InitTracing(ctx context.Context, serviceName, version, endpoint string) (ShutdownFunc, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace resource: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	log.Info("tracing enabled", "endpoint", endpoint, "service", serviceName)

	return func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return provider.Shutdown(shutdownCtx)
	}, nil
}
