package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/seu-repo/smartspeaker-gateway/pkg/config"
)

// Shutdowner flushes and stops a tracer provider.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

type noopShutdown struct{}

func (noopShutdown) Shutdown(context.Context) error { return nil }

// InitTracer installs a Jaeger-backed provider when tracing is enabled.
// When disabled the global no-op provider stays in place.
func InitTracer(cfg config.OpenTelemetryConfig, version string) (Shutdowner, error) {
	if !cfg.Enabled {
		return noopShutdown{}, nil
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(cfg.Jaeger.Endpoint),
	))
	if err != nil {
		return nil, err
	}

	sampler := sdktrace.AlwaysSample()
	if cfg.Jaeger.SamplerParam > 0 && cfg.Jaeger.SamplerParam < 1 {
		sampler = sdktrace.TraceIDRatioBased(cfg.Jaeger.SamplerParam)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(version),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sampler)),
	)

	otel.SetTracerProvider(tp)

	return tp, nil
}
