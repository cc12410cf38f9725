package recipe

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/query"
)

// Build chains the recipe steps onto source. Nothing is read until the
// returned query is driven.
func Build(r *Recipe, source *query.Query[Record]) (*query.Query[Record], error) {
	q := source
	for i := range r.Steps {
		next, err := applyStep(q, &r.Steps[i])
		if err != nil {
			return nil, fmt.Errorf("recipe: step %d (%s): %w", i, r.Steps[i].Op, err)
		}
		q = next
	}
	return q, nil
}

func applyStep(q *query.Query[Record], s *Step) (*query.Query[Record], error) {
	switch s.Op {
	case OpWhere:
		if s.Where == nil {
			return nil, errors.MissingField("where")
		}
		return where(q, s.Where), nil
	case OpSelect:
		fields := s.Fields
		return query.Select(q, func(r Record) Record {
			return Record(lo.PickByKeys(r, fields))
		}), nil
	case OpOrderBy:
		keys := append([]SortKey{{Field: s.Field, Desc: s.Desc}}, s.Then...)
		return orderBy(q, keys), nil
	case OpSkip:
		return q.Skip(s.Count), nil
	case OpTake:
		return q.Take(s.Count), nil
	case OpDistinct:
		return distinctBy(q, fieldKey(s.Field)), nil
	case OpGroupBy:
		return groupBy(q, s.Field), nil
	case OpReverse:
		return q.Reverse(), nil
	case OpUnion:
		return distinctBy(q.Concat(query.FromSlice(s.Records)), recordKey), nil
	case OpExcept:
		exclude := make(map[string]struct{}, len(s.Records))
		for _, r := range s.Records {
			exclude[recordKey(r)] = struct{}{}
		}
		return q.Filter(func(r Record) bool {
			_, found := exclude[recordKey(r)]
			return !found
		}), nil
	}
	return nil, errors.InvalidInput("op", "unknown step "+s.Op)
}

func where(q *query.Query[Record], c *Condition) *query.Query[Record] {
	return guarded(func(fail func(error)) *query.Query[Record] {
		return q.Filter(func(r Record) bool {
			ok, err := c.match(r)
			if err != nil {
				fail(err)
				return false
			}
			return ok
		})
	})
}

func orderBy(q *query.Query[Record], keys []SortKey) *query.Query[Record] {
	return guarded(func(fail func(error)) *query.Query[Record] {
		compare := func(key SortKey) func(a, b Record) int {
			return func(a, b Record) int {
				order, err := compareValues(key.Field, a[key.Field], b[key.Field])
				if err != nil {
					fail(err)
					return 0
				}
				if key.Desc {
					return -order
				}
				return order
			}
		}
		ordered := q.OrderByFunc(compare(keys[0]))
		for _, k := range keys[1:] {
			ordered = ordered.ThenByFunc(compare(k))
		}
		return ordered.Query
	})
}

func fieldKey(field string) func(Record) string {
	if field == "" {
		return recordKey
	}
	return func(r Record) string { return keyOf(r[field]) }
}

// distinctBy keeps the first record seen for each key.
func distinctBy(q *query.Query[Record], key func(Record) string) *query.Query[Record] {
	return query.GroupByResult(q, key, func(r Record) Record { return r }, func(_ string, rs []Record) Record {
		return rs[0]
	})
}

func groupBy(q *query.Query[Record], field string) *query.Query[Record] {
	return query.GroupByResult(q, fieldKey(field), func(r Record) Record { return r }, func(_ string, rs []Record) Record {
		return Record{
			"key":   rs[0][field],
			"count": len(rs),
			"items": rs,
		}
	})
}

// guarded lets predicates and comparators that cannot return an error
// report one. The first reported error ends the drive.
func guarded(build func(fail func(error)) *query.Query[Record]) *query.Query[Record] {
	return query.FromFunc(func() query.Iterator[Record] {
		g := &guardIter{}
		g.source = build(g.fail).Iter()
		return g
	})
}

type guardIter struct {
	source query.Iterator[Record]
	err    error
}

func (g *guardIter) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

func (g *guardIter) Next() (Record, bool, error) {
	if g.err != nil {
		return nil, false, g.err
	}
	r, ok, err := g.source.Next()
	if err != nil {
		return nil, false, err
	}
	if g.err != nil {
		return nil, false, g.err
	}
	return r, ok, nil
}

func (g *guardIter) Close() error { return g.source.Close() }
