package recipe

import (
	"testing"

	"github.com/kbukum/linqkit/errors"
	"github.com/kbukum/linqkit/query"
	"github.com/kbukum/linqkit/validation"
)

var staff = []Record{
	{"name": "ann", "team": "core", "age": 34, "salary": 5200.0},
	{"name": "bob", "team": "web", "age": 19, "salary": 3100.0},
	{"name": "cid", "team": "core", "age": 27},
	{"name": "dan", "team": "ops", "age": 34, "salary": 4100.0},
	{"name": "eve", "team": "web", "age": 16, "salary": 900.0},
}

func names(t *testing.T, v any) []string {
	t.Helper()
	rs, ok := v.([]Record)
	if !ok {
		t.Fatalf("expected []Record, got %T", v)
	}
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i], _ = r["name"].(string)
	}
	return out
}

func equalStrings(a, b []string) bool {
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

func mustBuild(t *testing.T, steps ...Step) *query.Query[Record] {
	t.Helper()
	q, err := Build(&Recipe{Name: "test", Steps: steps}, query.FromSlice(staff))
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	return q
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	qe, ok := errors.AsQueryError(err)
	if !ok {
		t.Fatalf("expected QueryError, got %T: %v", err, err)
	}
	fields, _ := qe.Details["fields"].([]validation.FieldError)
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.Field] = f.Message
	}
	return out
}
