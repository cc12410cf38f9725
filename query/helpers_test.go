package query

import (
	stderrors "errors"
	"testing"
)

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustSlice[T any](t *testing.T, q *Query[T]) []T {
	t.Helper()
	got, err := q.ToSlice()
	if err != nil {
		t.Fatal(err)
	}
	return got
}

var errBoom = stderrors.New("boom")

// failingIter yields items and then fails with err.
type failingIter struct {
	items  []int
	index  int
	err    error
	closed bool
}

func (it *failingIter) Next() (int, bool, error) {
	if it.index >= len(it.items) {
		return 0, false, it.err
	}
	val := it.items[it.index]
	it.index++
	return val, true, nil
}

func (it *failingIter) Close() error {
	it.closed = true
	return nil
}

// countingQuery counts how many values were pulled from the source and
// how many times it was started.
func countingQuery(items []int) (*Query[int], *int, *int) {
	pulls, starts := 0, 0
	q := FromFunc(func() Iterator[int] {
		starts++
		return &tapIter[int]{source: &sliceIter[int]{items: items}, fn: func(int) { pulls++ }}
	})
	return q, &pulls, &starts
}
