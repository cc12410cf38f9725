package query

// Grouping is a key together with the elements that produced it, in
// input order.
type Grouping[K comparable, E any] struct {
	Key      K
	Elements []E
}

// GroupBy groups the values of q by key. Groups are yielded in the order
// their key was first seen.
func GroupBy[T any, K comparable](q *Query[T], key func(T) K) *Query[Grouping[K, T]] {
	return GroupByElement(q, key, func(v T) T { return v })
}

// GroupByElement groups q by key, storing elem(v) for each value.
func GroupByElement[T any, K comparable, E any](q *Query[T], key func(T) K, elem func(T) E) *Query[Grouping[K, E]] {
	return GroupByResult(q, key, elem, func(k K, elems []E) Grouping[K, E] {
		return Grouping[K, E]{Key: k, Elements: elems}
	})
}

// GroupByResult groups q by key and maps each group through result once
// the whole input has been read.
func GroupByResult[T any, K comparable, E, R any](q *Query[T], key func(T) K, elem func(T) E, result func(K, []E) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &bufferedIter[R]{fill: func() ([]R, error) {
				it := q.create()
				defer it.Close()

				var keys []K
				groups := make(map[K][]E)
				for {
					val, ok, err := it.Next()
					if err != nil {
						return nil, err
					}
					if !ok {
						break
					}
					k := key(val)
					if _, seen := groups[k]; !seen {
						keys = append(keys, k)
					}
					groups[k] = append(groups[k], elem(val))
				}

				out := make([]R, 0, len(keys))
				for _, k := range keys {
					out = append(out, result(k, groups[k]))
				}
				return out, nil
			}}
		},
	}
}

// Join correlates outer and inner on equal keys and yields result for each
// matching pair, in inner order. When several outer values share a key the
// last one wins.
func Join[O, I any, K comparable, R any](outer *Query[O], inner *Query[I], outerKey func(O) K, innerKey func(I) K, result func(O, I) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &joinIter[O, I, K, R]{
				outer:    outer,
				source:   inner.create(),
				outerKey: outerKey,
				innerKey: innerKey,
				result:   result,
			}
		},
	}
}

// GroupJoin pairs each distinct outer key with every inner value that
// shares it. Keys are yielded in first-seen order using the first outer
// value for each key; keys without a match get an empty slice.
func GroupJoin[O, I any, K comparable, R any](outer *Query[O], inner *Query[I], outerKey func(O) K, innerKey func(I) K, result func(O, []I) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &bufferedIter[R]{fill: func() ([]R, error) {
				outers, err := collect(outer)
				if err != nil {
					return nil, err
				}
				inners, err := collect(inner)
				if err != nil {
					return nil, err
				}

				matches := make(map[K][]I)
				for _, v := range inners {
					k := innerKey(v)
					matches[k] = append(matches[k], v)
				}

				seen := make(map[K]struct{})
				out := make([]R, 0)
				for _, o := range outers {
					k := outerKey(o)
					if _, dup := seen[k]; dup {
						continue
					}
					seen[k] = struct{}{}
					group := matches[k]
					if group == nil {
						group = []I{}
					}
					out = append(out, result(o, group))
				}
				return out, nil
			}}
		},
	}
}

type joinIter[O, I any, K comparable, R any] struct {
	outer    *Query[O]
	source   Iterator[I]
	outerKey func(O) K
	innerKey func(I) K
	result   func(O, I) R
	lookup   map[K]O
}

func (it *joinIter[O, I, K, R]) Next() (R, bool, error) {
	var zero R
	if it.lookup == nil {
		outers, err := collect(it.outer)
		if err != nil {
			return zero, false, err
		}
		it.lookup = make(map[K]O, len(outers))
		for _, o := range outers {
			it.lookup[it.outerKey(o)] = o
		}
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		if o, match := it.lookup[it.innerKey(val)]; match {
			return it.result(o, val), true, nil
		}
	}
}

func (it *joinIter[O, I, K, R]) Close() error { return it.source.Close() }
