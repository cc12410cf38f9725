package query

import "iter"

// Iterator provides pull-based sequential access to a stream of values.
type Iterator[T any] interface {
	// Next returns the next value. Returns (zero, false, nil) when exhausted.
	Next() (T, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Query represents a lazy, pull-based sequence of T.
// No work happens until a terminal operator pulls values through it.
type Query[T any] struct {
	create func() Iterator[T]
}

// --- Constructors ---

// From creates a single-use query over an existing Iterator.
// The iterator is closed by the first terminal that drives the query;
// later terminals see an empty sequence.
func From[T any](it Iterator[T]) *Query[T] {
	cursor := &cursorIter[T]{source: it}
	return &Query[T]{
		create: func() Iterator[T] {
			return cursor
		},
	}
}

// FromSlice creates a restartable query over a slice. The slice is not
// copied; it is read each time the query is driven.
func FromSlice[T any](items []T) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &sliceIter[T]{items: items}
		},
	}
}

// Of creates a restartable query over the given values.
func Of[T any](items ...T) *Query[T] {
	return FromSlice(items)
}

// Empty creates a query that yields nothing.
func Empty[T any]() *Query[T] {
	return FromSlice[T](nil)
}

// FromFunc creates a query from a factory that produces a fresh Iterator
// each time the query is driven.
func FromFunc[T any](fn func() Iterator[T]) *Query[T] {
	return &Query[T]{create: fn}
}

// FromSeq creates a query over an iter.Seq. The query is restartable when
// seq can be ranged over more than once.
func FromSeq[T any](seq iter.Seq[T]) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			next, stop := iter.Pull(seq)
			return &pullIter[T]{next: next, stop: stop}
		},
	}
}

// FromChannel creates a single-use query that receives from ch until it is
// closed.
func FromChannel[T any](ch <-chan T) *Query[T] {
	return From[T](&chanIter[T]{ch: ch})
}

// Range creates a query over count consecutive integers starting at start.
func Range(start, count int) *Query[int] {
	return &Query[int]{
		create: func() Iterator[int] {
			return &rangeIter{next: start, remaining: count}
		},
	}
}

// Repeat creates a query that yields value count times. A negative count
// repeats forever.
func Repeat[T any](value T, count int) *Query[T] {
	return &Query[T]{
		create: func() Iterator[T] {
			return &repeatIter[T]{value: value, remaining: count}
		},
	}
}

// Iter returns the raw Iterator for this query. The caller must Close() it.
func (q *Query[T]) Iter() Iterator[T] {
	return q.create()
}

// --- Internal iterators ---

type sliceIter[T any] struct {
	items []T
	index int
}

func (it *sliceIter[T]) Next() (T, bool, error) {
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *sliceIter[T]) Close() error { return nil }

// cursorIter guards a one-shot source: once closed it stays exhausted.
type cursorIter[T any] struct {
	source Iterator[T]
	closed bool
}

func (it *cursorIter[T]) Next() (T, bool, error) {
	if it.closed {
		var zero T
		return zero, false, nil
	}
	return it.source.Next()
}

func (it *cursorIter[T]) Close() error {
	if it.closed {
		return nil
	}
	it.closed = true
	return it.source.Close()
}

type pullIter[T any] struct {
	next func() (T, bool)
	stop func()
}

func (it *pullIter[T]) Next() (T, bool, error) {
	val, ok := it.next()
	return val, ok, nil
}

func (it *pullIter[T]) Close() error {
	it.stop()
	return nil
}

type chanIter[T any] struct {
	ch <-chan T
}

func (it *chanIter[T]) Next() (T, bool, error) {
	val, ok := <-it.ch
	return val, ok, nil
}

func (it *chanIter[T]) Close() error { return nil }

type rangeIter struct {
	next      int
	remaining int
}

func (it *rangeIter) Next() (int, bool, error) {
	if it.remaining <= 0 {
		return 0, false, nil
	}
	val := it.next
	it.next++
	it.remaining--
	return val, true, nil
}

func (it *rangeIter) Close() error { return nil }

type repeatIter[T any] struct {
	value     T
	remaining int
}

func (it *repeatIter[T]) Next() (T, bool, error) {
	if it.remaining == 0 {
		var zero T
		return zero, false, nil
	}
	if it.remaining > 0 {
		it.remaining--
	}
	return it.value, true, nil
}

func (it *repeatIter[T]) Close() error { return nil }

// errIter fails on the first pull. Used when an operator cannot start.
type errIter[T any] struct {
	err error
}

func (it *errIter[T]) Next() (T, bool, error) {
	var zero T
	return zero, false, it.err
}

func (it *errIter[T]) Close() error { return nil }

// bufferedIter fills its buffer on the first pull and then replays it.
type bufferedIter[T any] struct {
	fill   func() ([]T, error)
	items  []T
	index  int
	filled bool
}

func (it *bufferedIter[T]) Next() (T, bool, error) {
	if !it.filled {
		it.filled = true
		items, err := it.fill()
		if err != nil {
			var zero T
			return zero, false, err
		}
		it.items = items
	}
	if it.index >= len(it.items) {
		var zero T
		return zero, false, nil
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *bufferedIter[T]) Close() error { return nil }

// drain pulls every remaining value from it without closing it.
func drain[T any](it Iterator[T]) ([]T, error) {
	result := make([]T, 0)
	for {
		val, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, val)
	}
}

// collect drives q to completion and closes its iterator.
func collect[T any](q *Query[T]) ([]T, error) {
	it := q.create()
	defer it.Close()
	return drain(it)
}

// matchAll combines optional predicates; no predicates matches everything.
func matchAll[T any](preds []func(T) bool) func(T) bool {
	return func(v T) bool {
		for _, pred := range preds {
			if !pred(v) {
				return false
			}
		}
		return true
	}
}
