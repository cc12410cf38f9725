package query

import (
	"fmt"

	"github.com/kbukum/linqkit/errors"
)

// Select transforms each value using fn. Count and order are preserved.
func Select[T, R any](q *Query[T], fn func(T) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &selectIter[T, R]{source: q.create(), fn: fn}
		},
	}
}

// SelectMany maps each value and its input index to an inner query and
// flattens the results: all values of the first inner query, then the
// second, and so on.
func SelectMany[T, R any](q *Query[T], collection func(T, int) *Query[R]) *Query[R] {
	return SelectManyResult(q, collection, func(_ T, inner R) R { return inner })
}

// SelectManyResult is SelectMany with a result selector that receives the
// originating value alongside each inner value.
func SelectManyResult[T, C, R any](q *Query[T], collection func(T, int) *Query[C], result func(T, C) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &selectManyIter[T, C, R]{source: q.create(), collection: collection, result: result}
		},
	}
}

// Cast converts each value with conv. The first conversion error aborts
// the drive and is returned by the terminal wrapped as
// errors.ErrConversionFailed.
func Cast[T, R any](q *Query[T], conv func(T) (R, error)) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &castIter[T, R]{source: q.create(), fn: conv}
		},
	}
}

// OfType keeps the values whose dynamic type is R and drops the rest.
// It never fails.
func OfType[R, T any](q *Query[T]) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &ofTypeIter[T, R]{source: q.create()}
		},
	}
}

// Zip combines values pairwise with fn and stops when either side ends.
func Zip[A, B, R any](a *Query[A], b *Query[B], fn func(A, B) R) *Query[R] {
	return &Query[R]{
		create: func() Iterator[R] {
			return &zipIter[A, B, R]{left: a.create(), right: b.create(), fn: fn}
		},
	}
}

// --- Iterator implementations ---

type selectIter[T, R any] struct {
	source Iterator[T]
	fn     func(T) R
}

func (it *selectIter[T, R]) Next() (R, bool, error) {
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		var zero R
		return zero, false, err
	}
	return it.fn(val), true, nil
}

func (it *selectIter[T, R]) Close() error { return it.source.Close() }

type selectManyIter[T, C, R any] struct {
	source     Iterator[T]
	collection func(T, int) *Query[C]
	result     func(T, C) R
	index      int
	outer      T
	current    Iterator[C]
}

func (it *selectManyIter[T, C, R]) Next() (R, bool, error) {
	var zero R
	for {
		if it.current != nil {
			val, ok, err := it.current.Next()
			if err != nil {
				return zero, false, err
			}
			if ok {
				return it.result(it.outer, val), true, nil
			}
			_ = it.current.Close()
			it.current = nil
		}
		outer, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		inner := it.collection(outer, it.index)
		it.index++
		if inner == nil {
			continue
		}
		it.outer = outer
		it.current = inner.create()
	}
}

func (it *selectManyIter[T, C, R]) Close() error {
	if it.current != nil {
		_ = it.current.Close()
		it.current = nil
	}
	return it.source.Close()
}

type castIter[T, R any] struct {
	source Iterator[T]
	fn     func(T) (R, error)
	index  int
}

func (it *castIter[T, R]) Next() (R, bool, error) {
	var zero R
	val, ok, err := it.source.Next()
	if err != nil || !ok {
		return zero, false, err
	}
	i := it.index
	it.index++
	out, err := it.fn(val)
	if err != nil {
		return zero, false, errors.ConversionFailed("Cast", i, err)
	}
	return out, true, nil
}

func (it *castIter[T, R]) Close() error { return it.source.Close() }

type ofTypeIter[T, R any] struct {
	source Iterator[T]
}

func (it *ofTypeIter[T, R]) Next() (R, bool, error) {
	var zero R
	for {
		val, ok, err := it.source.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		if out, match := any(val).(R); match {
			return out, true, nil
		}
	}
}

func (it *ofTypeIter[T, R]) Close() error { return it.source.Close() }

type zipIter[A, B, R any] struct {
	left  Iterator[A]
	right Iterator[B]
	fn    func(A, B) R
}

func (it *zipIter[A, B, R]) Next() (R, bool, error) {
	var zero R
	a, ok, err := it.left.Next()
	if err != nil || !ok {
		return zero, false, err
	}
	b, ok, err := it.right.Next()
	if err != nil || !ok {
		return zero, false, err
	}
	return it.fn(a, b), true, nil
}

func (it *zipIter[A, B, R]) Close() error {
	errLeft := it.left.Close()
	errRight := it.right.Close()
	if errLeft != nil {
		return errLeft
	}
	return errRight
}

// typeName renders the name of R for error messages.
func typeName[R any]() string {
	var zero R
	return fmt.Sprintf("%T", &zero)[1:]
}
