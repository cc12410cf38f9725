// Package observability provides OpenTelemetry tracing and metrics for
// query runs.
//
// Tracing and metrics providers:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("linq"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("linq"))
//	defer mp.Shutdown(ctx)
//
// Instrumenting a query:
//
//	metrics, err := observability.NewMetrics(observability.Meter("linq"))
//	q = observability.Observe(q, "orders", observability.WithMetrics(metrics))
//	items, err := q.ToSlice()
//
// Each time the observed query is driven a span is started, the yielded
// elements are counted, and the span ends when the terminal closes the
// query.
package observability
