package observability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
)

// Run status values.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Run holds the observability state of one drive of an observed query.
type Run struct {
	ID        string
	Name      string
	StartTime time.Time

	ctx      context.Context
	span     trace.Span
	metrics  *Metrics
	log      *logger.Logger
	elements int64
	err      error
	ended    bool
}

func startRun(parent context.Context, name string, o *observeOptions) *Run {
	id := uuid.NewString()
	ctx := logger.ContextWithRunID(parent, id)
	ctx, span := o.tracer.Start(ctx, SpanQueryRun, trace.WithAttributes(
		attribute.String(AttrQueryName, name),
		attribute.String(AttrRunID, id),
	))

	r := &Run{
		ID:        id,
		Name:      name,
		StartTime: time.Now(),
		ctx:       ctx,
		span:      span,
		metrics:   o.metrics,
		log:       o.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldQuery, name)),
	}
	if r.metrics != nil {
		r.metrics.RecordRunStart(ctx)
	}
	r.log.Debug("query run started")
	return r
}

// Context returns the run context carrying the span and run id.
func (r *Run) Context() context.Context { return r.ctx }

// Elements returns the number of values yielded so far.
func (r *Run) Elements() int64 { return r.elements }

// Duration returns the elapsed time since the run started.
func (r *Run) Duration() time.Duration { return time.Since(r.StartTime) }

func (r *Run) yielded() { r.elements++ }

func (r *Run) fail(err error) { r.err = err }

// end closes the span and records the run. It is a no-op after the first call.
func (r *Run) end() {
	if r.ended {
		return
	}
	r.ended = true
	duration := r.Duration()

	status := StatusOK
	if r.err != nil {
		status = StatusError
		code := string(errors.CodeOf(r.err))
		r.span.RecordError(r.err)
		r.span.SetStatus(codes.Error, r.err.Error())
		r.span.SetAttributes(attribute.String(AttrErrorCode, code))
		if r.metrics != nil {
			r.metrics.RecordError(r.ctx, r.Name, code)
		}
	}
	r.span.SetAttributes(
		attribute.Int64(AttrElements, r.elements),
		attribute.String(AttrStatus, status),
	)
	r.span.End()

	if r.metrics != nil {
		r.metrics.RecordRunEnd(r.ctx, r.Name, status, r.elements, duration)
	}

	fields := logger.RunFields(r.Name, r.elements, duration)
	fields[logger.FieldStatus] = status
	if r.err != nil {
		r.log.WithError(r.err).Warn("query run failed", fields)
		return
	}
	r.log.Debug("query run finished", fields)
}
