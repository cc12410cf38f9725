package query

// Where keeps the values for which pred holds. The index passed to pred is
// the position of the value in the input sequence, not in the output.
func (q *Query[T]) Where(pred func(T, int) bool) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &whereIter[T]{source: q.create(), fn: pred}
		},
	}
}

// Filter keeps the values for which pred holds.
func (q *Query[T]) Filter(pred func(T) bool) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &filterIter[T]{source: q.create(), fn: pred}
		},
	}
}

// Concat appends others after q, preserving the order of each sequence.
// Each sequence is started only after the previous one is exhausted.
func (q *Query[T]) Concat(others ...*Query[T]) *Query[T] {
	parts := make([]*Query[T], 0, len(others)+1)
	parts = append(parts, q)
	parts = append(parts, others...)
	return concat(parts)
}

func concat[T any](parts []*Query[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &concatIter[T]{parts: parts}
		},
	}
}

// Skip drops the first n values. n <= 0 drops nothing.
func (q *Query[T]) Skip(n int) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &skipIter[T]{source: q.create(), n: n}
		},
	}
}

// SkipWhile drops values while pred holds. Once pred fails for the first
// time it is never evaluated again, and every later value is yielded.
func (q *Query[T]) SkipWhile(pred func(T, int) bool) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &skipWhileIter[T]{source: q.create(), fn: pred}
		},
	}
}

// Take yields at most n values, then stops pulling from the source.
// n <= 0 yields nothing.
func (q *Query[T]) Take(n int) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &takeIter[T]{source: q.create(), remaining: n}
		},
	}
}

// TakeWhile yields values while pred holds and stops for good at the first
// value that fails it.
func (q *Query[T]) TakeWhile(pred func(T, int) bool) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &takeWhileIter[T]{source: q.create(), fn: pred}
		},
	}
}

// Reverse yields the values in reverse order. The source is buffered on the
// first pull.
func (q *Query[T]) Reverse() *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &bufferedIter[T]{fill: func() ([]T, error) {
				items, err := collect(q)
				if err != nil {
					return nil, err
				}
				for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
					items[i], items[j] = items[j], items[i]
				}
				return items, nil
			}}
		},
	}
}

// DefaultIfEmpty yields q unchanged when it has at least one value and
// fallback otherwise. Emptiness is checked through a tee when the query is
// driven, so the probed value is replayed rather than lost, and one-shot
// sources are still read only once.
func (q *Query[T]) DefaultIfEmpty(fallback *Query[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			forks := teeIterators(q.create(), 2)
			probe, rest := forks[0], forks[1]
			_, ok, err := probe.Next()
			_ = probe.Close()
			if err != nil {
				_ = rest.Close()
				return &errIter[T]{err: err}
			}
			if ok {
				return rest
			}
			_ = rest.Close()
			return fallback.create()
		},
	}
}

// Tap calls fn as a side-effect for each value, then passes the value
// through unchanged.
func (q *Query[T]) Tap(fn func(T)) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &tapIter[T]{source: q.create(), fn: fn}
		},
	}
}

// --- Iterator implementations ---

type whereIter[T any] struct {
	source Iterator[T]
	fn     func(T, int) bool
	index  int
}

func (it *whereIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		i := it.index
		it.index++
		if it.fn(val, i) {
			return val, true, nil
		}
	}
}

func (it *whereIter[T]) Close() error { return it.source.Close() }

type filterIter[T any] struct {
	source Iterator[T]
	fn     func(T) bool
}

func (it *filterIter[T]) Next() (T, bool, error) {
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		if it.fn(val) {
			return val, true, nil
		}
	}
}

func (it *filterIter[T]) Close() error { return it.source.Close() }

type concatIter[T any] struct {
	parts   []*Query[T]
	index   int
	current Iterator[T]
}

func (it *concatIter[T]) Next() (T, bool, error) {
	for it.index < len(it.parts) {
		if it.current == nil {
			it.current = it.parts[it.index].create()
		}
		val, ok, err := it.current.Next()
		if err != nil {
			return val, false, err
		}
		if ok {
			return val, true, nil
		}
		_ = it.current.Close()
		it.current = nil
		it.index++
	}
	var zero T
	return zero, false, nil
}

func (it *concatIter[T]) Close() error {
	if it.current == nil {
		return nil
	}
	err := it.current.Close()
	it.current = nil
	return err
}

type skipIter[T any] struct {
	source  Iterator[T]
	n       int
	skipped bool
}

func (it *skipIter[T]) Next() (T, bool, error) {
	if !it.skipped {
		it.skipped = true
		for i := 0; i < it.n; i++ {
			val, ok, err := it.source.Next()
			if err != nil || !ok {
				return val, false, err
			}
		}
	}
	return it.source.Next()
}

func (it *skipIter[T]) Close() error { return it.source.Close() }

type skipWhileIter[T any] struct {
	source  Iterator[T]
	fn      func(T, int) bool
	index   int
	yielded bool
}

func (it *skipWhileIter[T]) Next() (T, bool, error) {
	if it.yielded {
		return it.source.Next()
	}
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return val, false, err
		}
		i := it.index
		it.index++
		if !it.fn(val, i) {
			it.yielded = true
			return val, true, nil
		}
	}
}

func (it *skipWhileIter[T]) Close() error { return it.source.Close() }

type takeIter[T any] struct {
	source    Iterator[T]
	remaining int
}

func (it *takeIter[T]) Next() (T, bool, error) {
	if it.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, false, err
	}
	it.remaining--
	return val, true, nil
}

func (it *takeIter[T]) Close() error { return it.source.Close() }

type takeWhileIter[T any] struct {
	source Iterator[T]
	fn     func(T, int) bool
	index  int
	done   bool
}

func (it *takeWhileIter[T]) Next() (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, false, err
	}
	i := it.index
	it.index++
	if !it.fn(val, i) {
		it.done = true
		return zero, false, nil
	}
	return val, true, nil
}

func (it *takeWhileIter[T]) Close() error { return it.source.Close() }

type tapIter[T any] struct {
	source Iterator[T]
	fn     func(T)
}

func (it *tapIter[T]) Next() (T, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return val, ok, err
	}
	it.fn(val)
	return val, true, nil
}

func (it *tapIter[T]) Close() error { return it.source.Close() }
