package query

import (
	"iter"

	"github.com/go-softwarelab/common/pkg/optional"

	"github.com/kbukum/linqkit/errors"
)

// ToSlice drives the query and returns every value. An empty query yields
// an empty, non-nil slice.
func (q *Query[T]) ToSlice() ([]T, error) {
	return collect(q)
}

// ForEach calls fn for each value and stops at the first error from either
// the source or fn.
func (q *Query[T]) ForEach(fn func(T) error) error {
	it := q.create()
	defer it.Close()
	for {
		val, ok, err := it.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := fn(val); err != nil {
			return err
		}
	}
}

// ToSeq adapts the query to a range-over-func sequence. A source error is
// yielded once with a zero value and ends the sequence.
func (q *Query[T]) ToSeq() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		it := q.create()
		defer it.Close()
		for {
			val, ok, err := it.Next()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !ok || !yield(val, nil) {
				return
			}
		}
	}
}

// Count returns the number of values matching every predicate.
func (q *Query[T]) Count(preds ...func(T) bool) (int, error) {
	match := matchAll(preds)
	it := q.create()
	defer it.Close()
	n := 0
	for {
		val, ok, err := it.Next()
		if err != nil {
			return 0, err
		}
		if !ok {
			return n, nil
		}
		if match(val) {
			n++
		}
	}
}

// All reports whether pred holds for every value. It stops at the first
// failure and is true for an empty query.
func (q *Query[T]) All(pred func(T) bool) (bool, error) {
	it := q.create()
	defer it.Close()
	for {
		val, ok, err := it.Next()
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
		if !pred(val) {
			return false, nil
		}
	}
}

// Any reports whether some value matches every predicate. With no
// predicates it reports whether the query is non-empty.
func (q *Query[T]) Any(preds ...func(T) bool) (bool, error) {
	_, found, err := q.find(preds)
	return found, err
}

// First returns the first value matching every predicate.
func (q *Query[T]) First(preds ...func(T) bool) (T, error) {
	val, found, err := q.find(preds)
	if err != nil {
		return val, err
	}
	if !found {
		return val, errors.NoSuchElement("First")
	}
	return val, nil
}

// FirstOrDefault is First returning def when nothing matches.
func (q *Query[T]) FirstOrDefault(def T, preds ...func(T) bool) (T, error) {
	val, found, err := q.find(preds)
	if err != nil {
		return val, err
	}
	if !found {
		return def, nil
	}
	return val, nil
}

// FirstOrNone is First returning an empty optional when nothing matches.
func (q *Query[T]) FirstOrNone(preds ...func(T) bool) (optional.Value[T], error) {
	val, found, err := q.find(preds)
	if err != nil || !found {
		return optional.None[T](), err
	}
	return optional.Some(val), nil
}

// Last returns the last value matching every predicate. The whole query
// is read.
func (q *Query[T]) Last(preds ...func(T) bool) (T, error) {
	val, found, err := q.findLast(preds)
	if err != nil {
		return val, err
	}
	if !found {
		return val, errors.NoSuchElement("Last")
	}
	return val, nil
}

// LastOrDefault is Last returning def when nothing matches.
func (q *Query[T]) LastOrDefault(def T, preds ...func(T) bool) (T, error) {
	val, found, err := q.findLast(preds)
	if err != nil {
		return val, err
	}
	if !found {
		return def, nil
	}
	return val, nil
}

// LastOrNone is Last returning an empty optional when nothing matches.
func (q *Query[T]) LastOrNone(preds ...func(T) bool) (optional.Value[T], error) {
	val, found, err := q.findLast(preds)
	if err != nil || !found {
		return optional.None[T](), err
	}
	return optional.Some(val), nil
}

// Single returns the only value matching every predicate. It fails with
// errors.ErrNoSuchElement when nothing matches and errors.ErrTooManyElements
// as soon as a second match is found.
func (q *Query[T]) Single(preds ...func(T) bool) (T, error) {
	val, _, err := q.single("Single", preds)
	return val, err
}

// SingleOrDefault is Single returning def when the query is empty. A
// non-empty query with no match still fails.
func (q *Query[T]) SingleOrDefault(def T, preds ...func(T) bool) (T, error) {
	val, empty, err := q.single("SingleOrDefault", preds)
	if empty {
		return def, nil
	}
	return val, err
}

// ElementAt returns the value at index i. A negative index or one past the
// end fails with errors.ErrOutOfRange.
func (q *Query[T]) ElementAt(i int) (T, error) {
	val, found, err := q.elementAt(i)
	if err != nil {
		return val, err
	}
	if !found {
		return val, errors.OutOfRange("ElementAt", i)
	}
	return val, nil
}

// ElementAtOrDefault is ElementAt returning def when i is out of range.
func (q *Query[T]) ElementAtOrDefault(i int, def T) (T, error) {
	val, found, err := q.elementAt(i)
	if err != nil {
		return val, err
	}
	if !found {
		return def, nil
	}
	return val, nil
}

// Reduce folds the query with acc, seeding with the first value. An empty
// query fails with errors.ErrNoSuchElement.
func (q *Query[T]) Reduce(acc func(T, T) T) (T, error) {
	it := q.create()
	defer it.Close()
	result, ok, err := it.Next()
	if err != nil {
		return result, err
	}
	if !ok {
		return result, errors.NoSuchElement("Reduce")
	}
	for {
		val, ok, err := it.Next()
		if err != nil {
			var zero T
			return zero, err
		}
		if !ok {
			return result, nil
		}
		result = acc(result, val)
	}
}

func (q *Query[T]) find(preds []func(T) bool) (T, bool, error) {
	match := matchAll(preds)
	it := q.create()
	defer it.Close()
	for {
		val, ok, err := it.Next()
		if err != nil || !ok {
			var zero T
			return zero, false, err
		}
		if match(val) {
			return val, true, nil
		}
	}
}

func (q *Query[T]) findLast(preds []func(T) bool) (T, bool, error) {
	match := matchAll(preds)
	it := q.create()
	defer it.Close()
	var last T
	found := false
	for {
		val, ok, err := it.Next()
		if err != nil {
			var zero T
			return zero, false, err
		}
		if !ok {
			return last, found, nil
		}
		if match(val) {
			last, found = val, true
		}
	}
}

// single reports empty only when the query yielded no values at all.
func (q *Query[T]) single(operator string, preds []func(T) bool) (T, bool, error) {
	var zero T
	match := matchAll(preds)
	it := q.create()
	defer it.Close()
	var result T
	seen, matches := 0, 0
	for {
		val, ok, err := it.Next()
		if err != nil {
			return zero, false, err
		}
		if !ok {
			break
		}
		seen++
		if !match(val) {
			continue
		}
		matches++
		if matches > 1 {
			return zero, false, errors.TooManyElements(operator)
		}
		result = val
	}
	switch {
	case seen == 0:
		return zero, true, errors.NoSuchElement(operator)
	case matches == 0:
		return zero, false, errors.NoSuchElement(operator)
	}
	return result, false, nil
}

func (q *Query[T]) elementAt(i int) (T, bool, error) {
	var zero T
	if i < 0 {
		return zero, false, nil
	}
	it := q.create()
	defer it.Close()
	for n := 0; ; n++ {
		val, ok, err := it.Next()
		if err != nil || !ok {
			return zero, false, err
		}
		if n == i {
			return val, true, nil
		}
	}
}
