package recipe

import (
	stderrors "errors"
	"testing"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/query"
)

func TestBuild_WhereOrderSelect(t *testing.T) {
	q := mustBuild(t,
		Step{Op: OpWhere, Where: &Condition{Field: "age", Cmp: CmpGte, Value: 18}},
		Step{Op: OpOrderBy, Field: "age", Desc: true, Then: []SortKey{{Field: "name", Desc: true}}},
		Step{Op: OpSelect, Fields: []string{"name", "missing"}},
	)
	got, err := q.ToSlice()
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"dan", "ann", "cid", "bob"}; !equalStrings(names(t, got), want) {
		t.Errorf("got %v, want %v", names(t, got), want)
	}
	for _, r := range got {
		if len(r) != 1 {
			t.Errorf("expected only name to be kept, got %v", r)
		}
	}
}

func TestBuild_SkipTakeReverse(t *testing.T) {
	q := mustBuild(t,
		Step{Op: OpSkip, Count: 1},
		Step{Op: OpTake, Count: 3},
		Step{Op: OpReverse},
	)
	got, _ := q.ToSlice()
	if want := []string{"dan", "cid", "bob"}; !equalStrings(names(t, got), want) {
		t.Errorf("got %v, want %v", names(t, got), want)
	}
}

func TestBuild_DistinctByField(t *testing.T) {
	got, _ := mustBuild(t, Step{Op: OpDistinct, Field: "team"}).ToSlice()
	if want := []string{"ann", "bob", "dan"}; !equalStrings(names(t, got), want) {
		t.Errorf("got %v, want %v", names(t, got), want)
	}
}

func TestBuild_GroupBy(t *testing.T) {
	got, err := mustBuild(t, Step{Op: OpGroupBy, Field: "team"}).ToSlice()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(got))
	}
	wantKeys := []string{"core", "web", "ops"}
	wantCounts := []int{2, 2, 1}
	for i, g := range got {
		if g["key"] != wantKeys[i] || g["count"] != wantCounts[i] {
			t.Errorf("group %d: got key=%v count=%v", i, g["key"], g["count"])
		}
	}
	if items := names(t, got[0]["items"]); !equalStrings(items, []string{"ann", "cid"}) {
		t.Errorf("core items: got %v", items)
	}
}

func TestBuild_UnionAndExcept(t *testing.T) {
	src := query.FromSlice([]Record{{"id": 1.0}, {"id": 2.0}, {"id": 1.0}})
	union, err := Build(&Recipe{Steps: []Step{
		{Op: OpUnion, Records: []Record{{"id": 2}, {"id": 3}}},
	}}, src)
	if err != nil {
		t.Fatal(err)
	}
	got, _ := union.ToSlice()
	if len(got) != 3 || got[2]["id"] != 3 {
		t.Errorf("union: got %v", got)
	}

	except, _ := Build(&Recipe{Steps: []Step{
		{Op: OpExcept, Records: []Record{{"id": 2}}},
	}}, src)
	got, _ = except.ToSlice()
	if len(got) != 2 || got[0]["id"] != 1.0 || got[1]["id"] != 1.0 {
		t.Errorf("except should keep source duplicates, got %v", got)
	}
}

func TestBuild_Deferred(t *testing.T) {
	pulls := 0
	src := query.FromSeq(func(yield func(Record) bool) {
		for _, r := range staff {
			pulls++
			if !yield(r) {
				return
			}
		}
	})
	q, err := Build(&Recipe{Steps: []Step{
		{Op: OpWhere, Where: &Condition{Field: "team", Cmp: CmpEq, Value: "core"}},
		{Op: OpTake, Count: 1},
	}}, src)
	if err != nil {
		t.Fatal(err)
	}
	if pulls != 0 {
		t.Fatalf("expected no pulls before a terminal, got %d", pulls)
	}
	first, err := q.First()
	if err != nil {
		t.Fatal(err)
	}
	if first["name"] != "ann" || pulls != 1 {
		t.Errorf("got %v after %d pulls", first["name"], pulls)
	}
}

func TestBuild_IncomparableOrderFails(t *testing.T) {
	src := query.FromSlice([]Record{{"v": 1}, {"v": "x"}, {"v": 2}})
	q, _ := Build(&Recipe{Steps: []Step{{Op: OpOrderBy, Field: "v"}}}, src)
	if _, err := q.ToSlice(); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}

func TestBuild_IncomparableWhereFails(t *testing.T) {
	src := query.FromSlice([]Record{{"v": 1}, {"v": "x"}})
	q, _ := Build(&Recipe{Steps: []Step{
		{Op: OpWhere, Where: &Condition{Field: "v", Cmp: CmpLt, Value: 5}},
	}}, src)
	if _, err := q.ToSlice(); !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	// A restartable source gets a fresh guard each drive.
	n, err := q.Take(1).Count()
	if err != nil || n != 1 {
		t.Errorf("got %d, %v", n, err)
	}
}

func TestBuild_UnknownStep(t *testing.T) {
	_, err := Build(&Recipe{Steps: []Step{{Op: "pivot"}}}, query.Empty[Record]())
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
}
