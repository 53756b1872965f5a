// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope profiling for the sellerops service.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

const (
	// DefaultServiceName is used when no service name is configured
	DefaultServiceName = "sellerops"

	// ServiceVersion is reported on every exported signal
	ServiceVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

// newResource describes the running service for all exporters
func newResource(serviceName string) (*resource.Resource, error) {
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build telemetry resource: %w", err)
	}
	return res, nil
}

// shutdownContext bounds provider shutdown so a dead collector cannot hang exit
func shutdownContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, shutdownTimeout)
}

// sdkProvider is the lifecycle every OTEL SDK provider exposes
type sdkProvider interface {
	Shutdown(context.Context) error
	ForceFlush(context.Context) error
}

// pipeline holds one started signal pipeline. sdk stays nil while the
// signal is disabled, which turns Shutdown and ForceFlush into no-ops.
type pipeline struct {
	signal string
	sdk    sdkProvider
	logger *zap.Logger
}

func newPipeline(signal string, logger *zap.Logger) pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pipeline{signal: signal, logger: logger}
}

func (p *pipeline) running() bool {
	return p != nil && p.sdk != nil
}

// Shutdown drains buffered data and stops the exporter
func (p *pipeline) Shutdown(ctx context.Context) error {
	if !p.running() {
		return nil
	}
	ctx, cancel := shutdownContext(ctx)
	defer cancel()

	if err := p.sdk.Shutdown(ctx); err != nil {
		p.logger.Error("Telemetry pipeline did not stop cleanly", zap.String("signal", p.signal), zap.Error(err))
		return fmt.Errorf("shutdown %s pipeline: %w", p.signal, err)
	}
	p.logger.Info("Telemetry pipeline stopped", zap.String("signal", p.signal))
	return nil
}

// ForceFlush exports whatever is buffered without stopping
func (p *pipeline) ForceFlush(ctx context.Context) error {
	if !p.running() {
		return nil
	}
	return p.sdk.ForceFlush(ctx)
}
