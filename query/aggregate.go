package query

import (
	"cmp"

	"golang.org/x/exp/constraints"

	"github.com/kbukum/linqkit/errors"
)

// Number is the set of types Sum and Average accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Aggregate folds q into an accumulator starting at seed and maps the
// final accumulator through result.
func Aggregate[T, A, R any](q *Query[T], seed A, acc func(A, T) A, result func(A) R) (R, error) {
	total, err := Fold(q, seed, acc)
	if err != nil {
		var zero R
		return zero, err
	}
	return result(total), nil
}

// Fold folds q into an accumulator starting at seed.
func Fold[T, A any](q *Query[T], seed A, acc func(A, T) A) (A, error) {
	it := q.create()
	defer it.Close()
	total := seed
	for {
		val, ok, err := it.Next()
		if err != nil {
			var zero A
			return zero, err
		}
		if !ok {
			return total, nil
		}
		total = acc(total, val)
	}
}

// Sum adds every value. An empty query sums to zero.
func Sum[T Number](q *Query[T]) (T, error) {
	return Fold(q, T(0), func(total, v T) T { return total + v })
}

// SumWhere adds the values for which pred holds.
func SumWhere[T Number](q *Query[T], pred func(T) bool) (T, error) {
	return Sum(q.Filter(pred))
}

// SumBy adds sel(v) for every value.
func SumBy[T any, N Number](q *Query[T], sel func(T) N) (N, error) {
	return Sum(Select(q, sel))
}

// Average returns the arithmetic mean as float64. An empty query fails
// with errors.ErrNoSuchElement.
func Average[T Number](q *Query[T]) (float64, error) {
	var sum float64
	count := 0
	err := q.ForEach(func(v T) error {
		sum += float64(v)
		count++
		return nil
	})
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, errors.NoSuchElement("Average")
	}
	return sum / float64(count), nil
}

// Max returns the largest value matching every predicate.
func Max[T cmp.Ordered](q *Query[T], preds ...func(T) bool) (T, error) {
	return extreme(q, "Max", preds, func(candidate, best T) bool { return candidate > best })
}

// Min returns the smallest value matching every predicate.
func Min[T cmp.Ordered](q *Query[T], preds ...func(T) bool) (T, error) {
	return extreme(q, "Min", preds, func(candidate, best T) bool { return candidate < best })
}

// MaxBy returns the value with the largest key. The first of several
// equal keys wins.
func MaxBy[T any, K cmp.Ordered](q *Query[T], key func(T) K) (T, error) {
	return extreme(q, "MaxBy", nil, func(candidate, best T) bool { return key(candidate) > key(best) })
}

// MinBy returns the value with the smallest key. The first of several
// equal keys wins.
func MinBy[T any, K cmp.Ordered](q *Query[T], key func(T) K) (T, error) {
	return extreme(q, "MinBy", nil, func(candidate, best T) bool { return key(candidate) < key(best) })
}

func extreme[T any](q *Query[T], operator string, preds []func(T) bool, better func(candidate, best T) bool) (T, error) {
	match := matchAll(preds)
	it := q.create()
	defer it.Close()
	var best T
	found := false
	for {
		val, ok, err := it.Next()
		if err != nil {
			var zero T
			return zero, err
		}
		if !ok {
			break
		}
		if !match(val) {
			continue
		}
		if !found || better(val, best) {
			best, found = val, true
		}
	}
	if !found {
		return best, errors.NoSuchElement(operator)
	}
	return best, nil
}

// Contains reports whether q yields v. It stops at the first hit.
func Contains[T comparable](q *Query[T], v T) (bool, error) {
	return q.Any(func(x T) bool { return x == v })
}

// SequenceEqual reports whether q and other yield equal values in the same
// order and have the same length. It stops at the first difference.
func SequenceEqual[T comparable](q, other *Query[T]) (bool, error) {
	left := q.create()
	defer left.Close()
	right := other.create()
	defer right.Close()
	for {
		a, okA, err := left.Next()
		if err != nil {
			return false, err
		}
		b, okB, err := right.Next()
		if err != nil {
			return false, err
		}
		if okA != okB {
			return false, nil
		}
		if !okA {
			return true, nil
		}
		if a != b {
			return false, nil
		}
	}
}

// ToMap builds a map from key(v) to value(v). Later values overwrite
// earlier ones with the same key.
func ToMap[T any, K comparable, V any](q *Query[T], key func(T) K, value func(T) V) (map[K]V, error) {
	return Fold(q, make(map[K]V), func(m map[K]V, v T) map[K]V {
		m[key(v)] = value(v)
		return m
	})
}

// ToArray collects q into a slice of E, asserting each value's dynamic
// type. The first value that is not an E fails with
// errors.ErrTypeMismatch.
func ToArray[E, T any](q *Query[T]) ([]E, error) {
	it := q.create()
	defer it.Close()
	result := make([]E, 0)
	for {
		val, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return result, nil
		}
		out, match := any(val).(E)
		if !match {
			return nil, errors.TypeMismatch("ToArray", typeName[E](), val)
		}
		result = append(result, out)
	}
}
