package bootstrap

import (
	"context"
	"fmt"

	"github.com/kbukum/linqkit/observability"
)

// setupTelemetry starts the OTLP tracer and meter providers when the config
// enables telemetry and registers their shutdown as OnStop hooks.
func (a *App[C]) setupTelemetry(ctx context.Context) error {
	base := a.Cfg.GetToolConfig()
	tel := base.Telemetry
	if !tel.Enabled {
		return nil
	}

	tp, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    base.Name,
		ServiceVersion: a.Version,
		Environment:    base.Environment,
		Endpoint:       tel.Endpoint,
		Insecure:       tel.Insecure,
		SampleRate:     tel.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("tracer: %w", err)
	}
	a.OnStop(tp.Shutdown)

	mp, err := observability.InitMeter(ctx, &observability.MeterConfig{
		ServiceName:    base.Name,
		ServiceVersion: a.Version,
		Environment:    base.Environment,
		Endpoint:       tel.Endpoint,
		Insecure:       tel.Insecure,
		Interval:       tel.MetricInterval,
	})
	if err != nil {
		return fmt.Errorf("meter: %w", err)
	}
	a.OnStop(mp.Shutdown)

	metrics, err := observability.NewMetrics(mp.Meter(a.Name))
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	a.Metrics = metrics
	return nil
}
