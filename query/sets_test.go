package query

import (
	"slices"
	"testing"
)

func TestExcept_KeepsSourceDuplicates(t *testing.T) {
	got := mustSlice(t, Except(Of(1, 2, 2, 3, 4), Of(3, 5)))
	if !intSliceEqual(got, []int{1, 2, 2, 4}) {
		t.Errorf("got %v", got)
	}
}

func TestExcept_OtherReadOnce(t *testing.T) {
	other, _, starts := countingQuery([]int{1})
	q := Except(Of(1, 2, 3), other)
	if *starts != 0 {
		t.Fatal("other started before drive")
	}
	mustSlice(t, q)
	if *starts != 1 {
		t.Errorf("expected other to be read once, got %d", *starts)
	}
}

func TestIntersect(t *testing.T) {
	got := mustSlice(t, Intersect(Of(1, 2, 2, 3, 4), Of(4, 2, 9)))
	slices.Sort(got)
	if !intSliceEqual(got, []int{2, 4}) {
		t.Errorf("got %v", got)
	}
}

func TestUnion_FirstSeenOrder(t *testing.T) {
	got := mustSlice(t, Union(Of(2, 1, 4, 5, 4), Of(6, 4, 7, 8, 1)))
	if !intSliceEqual(got, []int{2, 1, 4, 5, 6, 7, 8}) {
		t.Errorf("got %v, want [2 1 4 5 6 7 8]", got)
	}
}

func TestUnion_NoOthers(t *testing.T) {
	got := mustSlice(t, Union(Of(3, 1, 3, 2, 1)))
	if !intSliceEqual(got, []int{3, 1, 2}) {
		t.Errorf("got %v", got)
	}
}

func TestDistinct(t *testing.T) {
	got := mustSlice(t, Distinct(Of(3, 1, 3, 2, 1)))
	slices.Sort(got)
	if !intSliceEqual(got, []int{1, 2, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestDistinct_Empty(t *testing.T) {
	if got := mustSlice(t, Distinct(Empty[string]())); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
