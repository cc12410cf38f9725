package recipe

import (
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/kbukum/linqkit/errors"
)

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{3, 3, true},
		{int64(-2), -2, true},
		{uint8(7), 7, true},
		{float32(1.5), 1.5, true},
		{2.25, 2.25, true},
		{json.Number("12"), 12, true},
		{"12", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toFloat(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("toFloat(%#v) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCompareValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"int vs float", 2, 2.5, -1},
		{"equal numbers", 3, 3.0, 0},
		{"strings", "bob", "ann", 1},
		{"bools", false, true, -1},
		{"nil first", nil, 0, -1},
		{"both nil", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := compareValues("f", tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompareValues_Incomparable(t *testing.T) {
	_, err := compareValues("age", 3, "three")
	if !stderrors.Is(err, errors.ErrInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	qe, _ := errors.AsQueryError(err)
	if qe.Details["field"] != "age" {
		t.Errorf("field detail: got %v", qe.Details["field"])
	}
}

func TestKeyOf_NumbersShareKeys(t *testing.T) {
	if keyOf(1) != keyOf(1.0) {
		t.Error("expected 1 and 1.0 to share a key")
	}
	if keyOf(1) == keyOf("1") {
		t.Error("expected 1 and \"1\" to differ")
	}
	a := Record{"id": 1, "tags": []any{"x"}}
	b := Record{"tags": []any{"x"}, "id": 1.0}
	if recordKey(a) != recordKey(b) {
		t.Errorf("expected equal record keys, got %q and %q", recordKey(a), recordKey(b))
	}
}

func TestCondition_Match(t *testing.T) {
	r := Record{"name": "annabel", "age": 34, "tags": []any{"lead", 7}, "nick": nil}
	tests := []struct {
		name string
		cond Condition
		want bool
	}{
		{"eq number", Condition{Field: "age", Cmp: CmpEq, Value: 34.0}, true},
		{"ne", Condition{Field: "age", Cmp: CmpNe, Value: 34}, false},
		{"gt", Condition{Field: "age", Cmp: CmpGt, Value: 30}, true},
		{"gte equal", Condition{Field: "age", Cmp: CmpGte, Value: 34}, true},
		{"lt", Condition{Field: "age", Cmp: CmpLt, Value: 34}, false},
		{"lte string", Condition{Field: "name", Cmp: CmpLte, Value: "bob"}, true},
		{"contains substring", Condition{Field: "name", Cmp: CmpContains, Value: "nab"}, true},
		{"contains element", Condition{Field: "tags", Cmp: CmpContains, Value: 7.0}, true},
		{"contains missing", Condition{Field: "none", Cmp: CmpContains, Value: "x"}, false},
		{"exists", Condition{Field: "nick", Cmp: CmpExists}, true},
		{"exists false", Condition{Field: "none", Cmp: CmpExists, Value: false}, true},
		{"gt on missing", Condition{Field: "none", Cmp: CmpGt, Value: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cond.match(r)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCondition_MatchErrors(t *testing.T) {
	r := Record{"name": "ann", "age": 34}
	for _, c := range []Condition{
		{Field: "age", Cmp: CmpGt, Value: "old"},
		{Field: "name", Cmp: CmpContains, Value: 1},
		{Field: "age", Cmp: CmpContains, Value: 3},
	} {
		if _, err := c.match(r); !stderrors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("%s %s %v: expected INVALID_INPUT, got %v", c.Field, c.Cmp, c.Value, err)
		}
	}
}
