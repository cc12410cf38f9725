package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/query"
)

type observeOptions struct {
	ctx     context.Context
	tracer  trace.Tracer
	metrics *Metrics
	log     *logger.Logger
	onEnd   func(*Run)
}

// ObserveOption configures Observe.
type ObserveOption func(*observeOptions)

// WithParent sets the context the run span is started under.
func WithParent(ctx context.Context) ObserveOption {
	return func(o *observeOptions) { o.ctx = ctx }
}

// WithTracer overrides the global tracer.
func WithTracer(tracer trace.Tracer) ObserveOption {
	return func(o *observeOptions) { o.tracer = tracer }
}

// WithMetrics records run metrics on m.
func WithMetrics(m *Metrics) ObserveOption {
	return func(o *observeOptions) { o.metrics = m }
}

// WithLogger overrides the "observability" component logger.
func WithLogger(l *logger.Logger) ObserveOption {
	return func(o *observeOptions) { o.log = l }
}

// OnRunEnd registers fn to be called after each run has been recorded.
func OnRunEnd(fn func(*Run)) ObserveOption {
	return func(o *observeOptions) { o.onEnd = fn }
}

// Observe returns a query that yields exactly what q yields and records
// every drive as a run: a span from the first pull until the terminal
// closes the query, the element count, and any error raised by the
// source or an upstream operator.
func Observe[T any](q *query.Query[T], name string, opts ...ObserveOption) *query.Query[T] {
	o := &observeOptions{
		ctx:    context.Background(),
		tracer: Tracer(defaultTracerName),
		log:    logger.Get("observability"),
	}
	for _, opt := range opts {
		opt(o)
	}

	return query.FromFunc(func() query.Iterator[T] {
		return &observedIter[T]{
			source: q.Iter(),
			run:    startRun(o.ctx, name, o),
			onEnd:  o.onEnd,
		}
	})
}

type observedIter[T any] struct {
	source query.Iterator[T]
	run    *Run
	onEnd  func(*Run)
}

func (it *observedIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil {
		it.run.fail(err)
		return val, false, err
	}
	if ok {
		it.run.yielded()
	}
	return val, ok, nil
}

func (it *observedIter[T]) Close() error {
	err := it.source.Close()
	if err != nil && it.run.err == nil {
		it.run.fail(err)
	}
	if !it.run.ended {
		it.run.end()
		if it.onEnd != nil {
			it.onEnd(it.run)
		}
	}
	return err
}
