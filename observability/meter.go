package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/linqkit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name reported for the tool.
	ServiceName string
	// ServiceVersion is the version of the tool.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricRuns     = "query.runs"
	MetricActive   = "query.active"
	MetricElements = "query.elements"
	MetricErrors   = "query.errors"
	MetricDuration = "query.duration"
)

// Metrics holds the instruments recorded for query runs.
type Metrics struct {
	runs     metric.Int64Counter
	active   metric.Int64UpDownCounter
	elements metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runs, err := meter.Int64Counter(MetricRuns,
		metric.WithDescription("Total number of query runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricRuns, err)
	}

	active, err := meter.Int64UpDownCounter(MetricActive,
		metric.WithDescription("Number of query runs in progress"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricActive, err)
	}

	elements, err := meter.Int64Counter(MetricElements,
		metric.WithDescription("Total number of elements yielded by query runs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricElements, err)
	}

	errCounter, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Total query run failures by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	duration, err := meter.Float64Histogram(MetricDuration,
		metric.WithDescription("Duration of query runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricDuration, err)
	}

	return &Metrics{
		runs:     runs,
		active:   active,
		elements: elements,
		errors:   errCounter,
		duration: duration,
	}, nil
}

// RecordRunStart increments the active run count.
func (m *Metrics) RecordRunStart(ctx context.Context) {
	m.active.Add(ctx, 1)
}

// RecordRunEnd decrements active runs and records the completed run.
func (m *Metrics) RecordRunEnd(ctx context.Context, name, status string, elements int64, duration time.Duration) {
	nameAttr := attribute.String(AttrQueryName, name)
	m.active.Add(ctx, -1)
	m.runs.Add(ctx, 1, metric.WithAttributes(nameAttr, attribute.String(AttrStatus, status)))
	m.elements.Add(ctx, elements, metric.WithAttributes(nameAttr))
	m.duration.Record(ctx, duration.Seconds(), metric.WithAttributes(nameAttr))
}

// RecordError records a failed run by error code.
func (m *Metrics) RecordError(ctx context.Context, name, code string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrQueryName, name),
		attribute.String(AttrErrorCode, code),
	))
}
