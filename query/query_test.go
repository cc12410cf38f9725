package query

import (
	stderrors "errors"
	"slices"
	"testing"
)

func TestFromSlice_ToSlice(t *testing.T) {
	got := mustSlice(t, FromSlice([]int{1, 2, 3}))
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestFromSlice_EmptyIsNonNil(t *testing.T) {
	got := mustSlice(t, FromSlice([]int{}))
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestFromSlice_Restartable(t *testing.T) {
	q := Select(FromSlice([]int{1, 2, 3}), func(n int) int { return n * 2 })
	first := mustSlice(t, q)
	second := mustSlice(t, q)
	if !intSliceEqual(first, second) {
		t.Errorf("restart mismatch: %v vs %v", first, second)
	}
}

func TestFromSlice_ObservesMutation(t *testing.T) {
	items := []int{1, 2, 3}
	q := FromSlice(items)
	items[0] = 10
	got := mustSlice(t, q)
	if got[0] != 10 {
		t.Errorf("expected query to read the slice at drive time, got %v", got)
	}
}

func TestFrom_OneShot(t *testing.T) {
	q := From[int](&sliceIter[int]{items: []int{1, 2, 3}})
	first := mustSlice(t, q)
	if !intSliceEqual(first, []int{1, 2, 3}) {
		t.Errorf("got %v, want [1 2 3]", first)
	}
	second := mustSlice(t, q)
	if len(second) != 0 {
		t.Errorf("expected exhausted one-shot source, got %v", second)
	}
}

func TestFrom_PartialDriveThenEmpty(t *testing.T) {
	q := From[int](&sliceIter[int]{items: []int{1, 2, 3}})
	first, err := q.First()
	if err != nil {
		t.Fatal(err)
	}
	if first != 1 {
		t.Errorf("got %d, want 1", first)
	}
	rest := mustSlice(t, q)
	if len(rest) != 0 {
		t.Errorf("expected closed source to stay empty, got %v", rest)
	}
}

func TestFrom_ClosesSource(t *testing.T) {
	src := &failingIter{items: []int{1}}
	if _, err := From[int](src).ToSlice(); err != nil {
		t.Fatal(err)
	}
	if !src.closed {
		t.Error("expected source to be closed after terminal")
	}
}

func TestOf(t *testing.T) {
	got := mustSlice(t, Of("a", "b"))
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("got %v", got)
	}
}

func TestEmpty(t *testing.T) {
	n, err := Empty[int]().Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("got %d, want 0", n)
	}
}

func TestFromSeq(t *testing.T) {
	got := mustSlice(t, FromSeq(slices.Values([]int{4, 5, 6})))
	if !intSliceEqual(got, []int{4, 5, 6}) {
		t.Errorf("got %v", got)
	}
}

func TestFromSeq_EarlyStop(t *testing.T) {
	got := mustSlice(t, FromSeq(slices.Values([]int{4, 5, 6})).Take(1))
	if !intSliceEqual(got, []int{4}) {
		t.Errorf("got %v", got)
	}
}

func TestFromChannel(t *testing.T) {
	ch := make(chan int, 3)
	ch <- 1
	ch <- 2
	ch <- 3
	close(ch)
	got := mustSlice(t, FromChannel(ch))
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestRange(t *testing.T) {
	got := mustSlice(t, Range(3, 4))
	if !intSliceEqual(got, []int{3, 4, 5, 6}) {
		t.Errorf("got %v", got)
	}
	if got := mustSlice(t, Range(0, -1)); len(got) != 0 {
		t.Errorf("negative count: got %v", got)
	}
}

func TestRepeat_InfiniteWithTake(t *testing.T) {
	got := mustSlice(t, Repeat(7, -1).Take(3))
	if !intSliceEqual(got, []int{7, 7, 7}) {
		t.Errorf("got %v", got)
	}
}

func TestQuery_Lazy(t *testing.T) {
	q, pulls, starts := countingQuery([]int{1, 2, 3})
	_ = Select(q.Where(func(n, _ int) bool { return n > 1 }), func(n int) int { return n * 2 })
	if *pulls != 0 || *starts != 0 {
		t.Errorf("expected no work before a terminal, pulls=%d starts=%d", *pulls, *starts)
	}
}

func TestQuery_SourceErrorPropagates(t *testing.T) {
	q := From[int](&failingIter{items: []int{1, 2}, err: errBoom})
	_, err := Select(q, func(n int) int { return n }).ToSlice()
	if !stderrors.Is(err, errBoom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestQuery_Iter(t *testing.T) {
	it := Of(1, 2).Iter()
	defer it.Close()
	val, ok, err := it.Next()
	if err != nil || !ok || val != 1 {
		t.Errorf("got (%d, %v, %v)", val, ok, err)
	}
}
