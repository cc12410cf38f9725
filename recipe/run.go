package recipe

import (
	"context"
	"time"

	"github.com/go-softwarelab/common/pkg/optional"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/logger"
	"github.com/kbukum/linqkit/observability"
	"github.com/kbukum/linqkit/query"
)

// Result is the outcome of one recipe run.
type Result struct {
	Recipe   string `json:"recipe"`
	RunID    string `json:"run_id,omitempty"`
	Terminal string `json:"terminal"`
	Elements int64  `json:"elements"`
	Value    any    `json:"value"`
}

// Run validates r, builds it over source and drives it with the recipe's
// terminal. The pipeline is observed under the recipe name; opts are passed
// through to observability.Observe.
func Run(ctx context.Context, r *Recipe, source *query.Query[Record], opts ...observability.ObserveOption) (*Result, error) {
	log := logger.Get("recipe").WithFields(logger.Fields(logger.FieldRecipe, r.Name))

	if err := r.Validate(); err != nil {
		log.WithError(err).Warn("recipe rejected")
		return nil, err
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanRecipeRun)
	defer span.End()
	span.SetAttributes(
		attribute.String(observability.AttrQueryName, r.Name),
		attribute.Int("recipe.steps", len(r.Steps)),
		attribute.String("recipe.terminal", r.Terminal.Op),
	)

	start := time.Now()
	q, err := Build(r, source)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	res := &Result{Recipe: r.Name, Terminal: r.Terminal.Op}
	opts = append([]observability.ObserveOption{
		observability.WithParent(ctx),
		observability.OnRunEnd(func(run *observability.Run) {
			res.RunID = run.ID
			res.Elements = run.Elements()
		}),
	}, opts...)
	observed := observability.Observe(q, r.Name, opts...)

	value, err := Execute(observed, &r.Terminal)
	fields := logger.Fields(
		logger.FieldTerminal, r.Terminal.Op,
		logger.FieldRunID, res.RunID,
		logger.FieldElements, res.Elements,
	)
	fields = logger.MergeWithDuration(fields, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String(observability.AttrErrorCode, string(errors.CodeOf(err))))
		log.WithError(err).Warn("recipe failed", fields)
		return nil, err
	}

	res.Value = value
	log.Info("recipe finished", fields)
	return res, nil
}

// Execute drives q with t and returns the terminal's value: a []Record for
// list, an int for count, a Record (or nil when optional) for first, last
// and single, a float64 for sum, average, min and max, and a bool for any
// and all.
func Execute(q *query.Query[Record], t *Terminal) (any, error) {
	if t.Where != nil && t.Op != TermAll {
		q = where(q, t.Where)
	}

	switch t.Op {
	case TermList:
		return q.ToSlice()
	case TermCount:
		return q.Count()
	case TermFirst:
		if t.Optional {
			return orNil(q.FirstOrNone())
		}
		return q.First()
	case TermLast:
		if t.Optional {
			return orNil(q.LastOrNone())
		}
		return q.Last()
	case TermSingle:
		if t.Optional {
			r, err := q.SingleOrDefault(nil)
			if err != nil || r == nil {
				return nil, err
			}
			return r, nil
		}
		return q.Single()
	case TermSum:
		return query.Sum(numbers(q, t.Field))
	case TermAverage:
		return query.Average(numbers(q, t.Field))
	case TermMin:
		return query.Min(numbers(q, t.Field))
	case TermMax:
		return query.Max(numbers(q, t.Field))
	case TermAny:
		return q.Any()
	case TermAll:
		if t.Where == nil {
			return nil, errors.MissingField("terminal.where")
		}
		return all(q, t.Where)
	}
	return nil, errors.InvalidInput("terminal", "unknown terminal "+t.Op)
}

// numbers reads field from every record that has it as a float64.
func numbers(q *query.Query[Record], field string) *query.Query[float64] {
	present := query.Select(q, func(r Record) any { return r[field] }).
		Filter(func(v any) bool { return v != nil })
	return query.Cast(present, func(v any) (float64, error) {
		f, ok := toFloat(v)
		if !ok {
			return 0, errors.TypeMismatch(field, "number", v)
		}
		return f, nil
	})
}

func all(q *query.Query[Record], c *Condition) (bool, error) {
	var matchErr error
	ok, err := q.All(func(r Record) bool {
		m, err := c.match(r)
		if err != nil {
			matchErr = err
			return false
		}
		return m
	})
	if err != nil {
		return false, err
	}
	if matchErr != nil {
		return false, matchErr
	}
	return ok, nil
}

func orNil(v optional.Value[Record], err error) (any, error) {
	if err != nil || !v.IsPresent() {
		return nil, err
	}
	return v.MustGet(), nil
}
