// Package telemetry wires OpenTelemetry tracing, metrics and log export, and
// optional Pyroscope continuous profiling.
// Every provider degrades to a no-op when its signal is disabled so callers
// never need to branch on configuration.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// ServiceVersion is reported on every exported resource.
const ServiceVersion = "1.0.0"

// shutdownTimeout bounds how long a provider may spend flushing on exit.
const shutdownTimeout = 10 * time.Second

// Config holds the settings shared by all three signals.
type Config struct {
	Enabled           bool
	MetricsEnabled    bool
	LogsEnabled       bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	ExportInterval    time.Duration

	// ProfilingEnabled pushes profiles to the Pyroscope server at
	// ProfilingEndpoint, e.g. "http://pyroscope:4040".
	ProfilingEnabled  bool
	ProfilingEndpoint string
}

// Providers groups the tracer, meter and logger providers and the profiler
// so main can initialise and shut them down together.
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
}

// Setup creates every provider. Metrics and logs additionally require the
// top-level Enabled flag. With both tracing and profiling on, spans are
// linked to profiles.
func Setup(ctx context.Context, cfg Config, logger *zap.Logger) (*Providers, error) {
	tp, err := NewTracerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	prof, err := NewProfiler(cfg, logger)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx))
	}
	if prof.IsEnabled() {
		tp.EnableSpanProfiles()
	}
	mp, err := NewMeterProvider(ctx, cfg, logger)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), prof.Stop())
	}
	lp, err := NewLoggerProvider(ctx, cfg, logger)
	if err != nil {
		return nil, errors.Join(err, tp.Shutdown(ctx), prof.Stop(), mp.Shutdown(ctx))
	}
	return &Providers{Tracer: tp, Meter: mp, Logs: lp, Profiler: prof}, nil
}

// Shutdown flushes and stops all providers, logs last so shutdown messages
// from the other providers are still exported.
func (p *Providers) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.Tracer.Shutdown(ctx),
		p.Profiler.Stop(),
		p.Meter.Shutdown(ctx),
		p.Logs.Shutdown(ctx),
	)
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdown runs fn under the shared timeout and logs the outcome.
func shutdown(ctx context.Context, logger *zap.Logger, signal string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		logger.Error("Error shutting down "+signal+" provider", zap.Error(err))
		return fmt.Errorf("failed to shutdown %s provider: %w", signal, err)
	}
	logger.Info("OpenTelemetry " + signal + " provider shutdown complete")
	return nil
}
