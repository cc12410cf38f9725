package query

// Except yields the values of q that do not appear in other. The other
// side is read into a set on the first pull; duplicates in q are kept.
func Except[T comparable](q, other *Query[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &exceptIter[T]{source: q.create(), other: other}
		},
	}
}

// Intersect yields the unique values present in both q and other.
// The output order is not defined.
func Intersect[T comparable](q, other *Query[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &bufferedIter[T]{fill: func() ([]T, error) {
				left, err := toSet(q)
				if err != nil {
					return nil, err
				}
				right, err := toSet(other)
				if err != nil {
					return nil, err
				}
				result := make([]T, 0)
				for v := range left {
					if _, ok := right[v]; ok {
						result = append(result, v)
					}
				}
				return result, nil
			}}
		},
	}
}

// Union yields the unique values of q followed by those of others, each
// in the order it was first seen.
func Union[T comparable](q *Query[T], others ...*Query[T]) *Query[T] {
	parts := append([]*Query[T]{q}, others...)
	all := concat(parts)
	return &Query[T]{
		create: func() Iterator[T] {
			return &distinctIter[T]{source: all.create(), seen: make(map[T]struct{})}
		},
	}
}

// Distinct yields the unique values of q. The output order is not
// defined; use Union with no arguments for first-seen order.
func Distinct[T comparable](q *Query[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &bufferedIter[T]{fill: func() ([]T, error) {
				set, err := toSet(q)
				if err != nil {
					return nil, err
				}
				result := make([]T, 0, len(set))
				for v := range set {
					result = append(result, v)
				}
				return result, nil
			}}
		},
	}
}

func toSet[T comparable](q *Query[T]) (map[T]struct{}, error) {
	it := q.create()
	defer it.Close()
	set := make(map[T]struct{})
	for {
		val, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return set, nil
		}
		set[val] = struct{}{}
	}
}

type exceptIter[T comparable] struct {
	source  Iterator[T]
	other   *Query[T]
	exclude map[T]struct{}
}

func (it *exceptIter[T]) Next() (T, bool, error) {
	var zero T
	if it.exclude == nil {
		set, err := toSet(it.other)
		if err != nil {
			return zero, false, err
		}
		it.exclude = set
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		if _, skip := it.exclude[val]; !skip {
			return val, true, nil
		}
	}
}

func (it *exceptIter[T]) Close() error { return it.source.Close() }

type distinctIter[T comparable] struct {
	source Iterator[T]
	seen   map[T]struct{}
}

func (it *distinctIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		if _, dup := it.seen[val]; dup {
			continue
		}
		it.seen[val] = struct{}{}
		return val, true, nil
	}
}

func (it *distinctIter[T]) Close() error { return it.source.Close() }
