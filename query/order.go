package query

import (
	"cmp"
	"slices"
)

// Ordered is a query sorted by one or more keys. Further keys are added
// with ThenBy and ThenByDescending; they only break ties left by the
// earlier keys. Sorting is stable and happens on the first pull.
type Ordered[T any] struct {
	*Query[T]
	source  *Query[T]
	compare func(a, b T) int
}

func newOrdered[T any](source *Query[T], compare func(a, b T) int) *Ordered[T] {
	return &Ordered[T]{
		Query: &Query[T]{
			create: func() Iterator[T] {
				return &bufferedIter[T]{fill: func() ([]T, error) {
					items, err := collect(source)
					if err != nil {
						return nil, err
					}
					slices.SortStableFunc(items, compare)
					return items, nil
				}}
			},
		},
		source:  source,
		compare: compare,
	}
}

// OrderBy sorts q ascending by key.
func OrderBy[T any, K cmp.Ordered](q *Query[T], key func(T) K) *Ordered[T] {
	return newOrdered(q, ascending(key))
}

// OrderByDescending sorts q descending by key.
func OrderByDescending[T any, K cmp.Ordered](q *Query[T], key func(T) K) *Ordered[T] {
	return newOrdered(q, descending(key))
}

// OrderByFunc sorts q with a caller-supplied comparison.
func (q *Query[T]) OrderByFunc(compare func(a, b T) int) *Ordered[T] {
	return newOrdered(q, compare)
}

// ThenBy adds an ascending tie-break key.
func ThenBy[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return newOrdered(o.source, chain(o.compare, ascending(key)))
}

// ThenByDescending adds a descending tie-break key.
func ThenByDescending[T any, K cmp.Ordered](o *Ordered[T], key func(T) K) *Ordered[T] {
	return newOrdered(o.source, chain(o.compare, descending(key)))
}

// ThenByFunc adds a tie-break comparison.
func (o *Ordered[T]) ThenByFunc(compare func(a, b T) int) *Ordered[T] {
	return newOrdered(o.source, chain(o.compare, compare))
}

func ascending[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

func descending[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int { return cmp.Compare(key(b), key(a)) }
}

func chain[T any](first, second func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		if c := first(a, b); c != 0 {
			return c
		}
		return second(a, b)
	}
}
