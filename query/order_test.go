package query

import (
	"cmp"
	"slices"
	"strings"
	"testing"
)

type person struct {
	Name string
	Age  int
	City string
}

var people = []person{
	{"ann", 31, "oslo"},
	{"bob", 25, "rome"},
	{"cid", 31, "rome"},
	{"dan", 25, "oslo"},
	{"eve", 40, "oslo"},
}

func names(ps []person) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestOrderBy_Stable(t *testing.T) {
	got := mustSlice(t, OrderBy(FromSlice(people), func(p person) int { return p.Age }).Query)
	want := []string{"bob", "dan", "ann", "cid", "eve"}
	if !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestOrderByDescending(t *testing.T) {
	got := mustSlice(t, OrderByDescending(FromSlice(people), func(p person) int { return p.Age }).Query)
	want := []string{"eve", "ann", "cid", "bob", "dan"}
	if !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestThenBy(t *testing.T) {
	byCity := OrderBy(FromSlice(people), func(p person) string { return p.City })
	got := mustSlice(t, ThenByDescending(byCity, func(p person) int { return p.Age }).Query)
	want := []string{"eve", "ann", "dan", "cid", "bob"}
	if !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}

	got = mustSlice(t, ThenBy(byCity, func(p person) int { return p.Age }).Query)
	want = []string{"dan", "ann", "eve", "bob", "cid"}
	if !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestOrderByFunc_ThenByFunc(t *testing.T) {
	o := FromSlice(people).OrderByFunc(func(a, b person) int { return cmp.Compare(a.Age, b.Age) }).
		ThenByFunc(func(a, b person) int { return strings.Compare(b.Name, a.Name) })
	got := mustSlice(t, o.Query)
	want := []string{"dan", "bob", "cid", "ann", "eve"}
	if !slices.Equal(names(got), want) {
		t.Errorf("got %v, want %v", names(got), want)
	}
}

func TestOrderBy_ChainsWithOperators(t *testing.T) {
	q := OrderBy(Of(5, 3, 9, 1), func(n int) int { return n }).Take(2)
	got := mustSlice(t, q)
	if !intSliceEqual(got, []int{1, 3}) {
		t.Errorf("got %v", got)
	}
}

func TestOrderBy_DoesNotMutateSource(t *testing.T) {
	items := []int{3, 1, 2}
	mustSlice(t, OrderBy(FromSlice(items), func(n int) int { return n }).Query)
	if !intSliceEqual(items, []int{3, 1, 2}) {
		t.Errorf("source modified: %v", items)
	}
}
