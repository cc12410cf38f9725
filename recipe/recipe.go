package recipe

import (
	"fmt"

	"github.com/kbukum/linqkit/validation"
)

// Record is one decoded input element.
type Record map[string]any

// Step operations.
const (
	OpWhere    = "where"
	OpSelect   = "select"
	OpOrderBy  = "order_by"
	OpSkip     = "skip"
	OpTake     = "take"
	OpDistinct = "distinct"
	OpGroupBy  = "group_by"
	OpReverse  = "reverse"
	OpUnion    = "union"
	OpExcept   = "except"
)

// Terminal operations.
const (
	TermList    = "list"
	TermCount   = "count"
	TermFirst   = "first"
	TermLast    = "last"
	TermSingle  = "single"
	TermSum     = "sum"
	TermAverage = "average"
	TermMin     = "min"
	TermMax     = "max"
	TermAny     = "any"
	TermAll     = "all"
)

// Comparison operators accepted in a Condition.
const (
	CmpEq       = "eq"
	CmpNe       = "ne"
	CmpGt       = "gt"
	CmpGte      = "gte"
	CmpLt       = "lt"
	CmpLte      = "lte"
	CmpContains = "contains"
	CmpExists   = "exists"
)

// Recipe is a declarative query: a chain of lazy steps closed by one terminal.
type Recipe struct {
	// ID optionally identifies the recipe across runs.
	ID string `yaml:"id,omitempty" json:"id,omitempty" validate:"omitempty,uuid"`
	// Name labels runs in logs, spans and metrics.
	Name string `yaml:"name" json:"name" validate:"required,max=128"`
	// Steps are applied in order to the input records.
	Steps []Step `yaml:"steps,omitempty" json:"steps,omitempty" validate:"-"`
	// Terminal drives the query and produces the result.
	Terminal Terminal `yaml:"terminal" json:"terminal" validate:"-"`
}

// Step is one lazy operator in a recipe.
type Step struct {
	Op string `yaml:"op" json:"op" validate:"required,oneof=where select order_by skip take distinct group_by reverse union except"`
	// Where is the predicate of a where step.
	Where *Condition `yaml:"where,omitempty" json:"where,omitempty" validate:"-"`
	// Fields lists the keys kept by a select step.
	Fields []string `yaml:"fields,omitempty" json:"fields,omitempty"`
	// Field is the key used by order_by, distinct and group_by.
	Field string `yaml:"field,omitempty" json:"field,omitempty"`
	// Desc reverses the primary order_by key.
	Desc bool `yaml:"desc,omitempty" json:"desc,omitempty"`
	// Then lists secondary order_by keys.
	Then []SortKey `yaml:"then,omitempty" json:"then,omitempty"`
	// Count is the number of records skipped or taken.
	Count int `yaml:"count,omitempty" json:"count,omitempty" validate:"gte=0"`
	// Records are the inline operand of union and except.
	Records []Record `yaml:"records,omitempty" json:"records,omitempty"`
}

// SortKey is one secondary ordering key.
type SortKey struct {
	Field string `yaml:"field" json:"field" validate:"required"`
	Desc  bool   `yaml:"desc,omitempty" json:"desc,omitempty"`
}

// Condition compares a record field against a constant.
type Condition struct {
	Field string `yaml:"field" json:"field" validate:"required"`
	Cmp   string `yaml:"cmp" json:"cmp" validate:"required,oneof=eq ne gt gte lt lte contains exists"`
	Value any    `yaml:"value,omitempty" json:"value,omitempty"`
}

// Terminal selects how the query is driven.
type Terminal struct {
	Op string `yaml:"op" json:"op" validate:"required,oneof=list count first last single sum average min max any all"`
	// Field is the numeric field read by sum, average, min and max.
	Field string `yaml:"field,omitempty" json:"field,omitempty"`
	// Where restricts the records the terminal considers.
	Where *Condition `yaml:"where,omitempty" json:"where,omitempty" validate:"-"`
	// Optional makes first, last and single return null instead of failing
	// when nothing matches.
	Optional bool `yaml:"optional,omitempty" json:"optional,omitempty"`
}

// Validate checks the recipe and every step. Field errors are reported
// under their position, e.g. "steps[2].count".
func (r *Recipe) Validate() error {
	v := validation.New()
	v.Merge("recipe", validation.Validate(r))

	for i := range r.Steps {
		r.Steps[i].validate(v, fmt.Sprintf("steps[%d]", i))
	}
	r.Terminal.validate(v)

	return v.Err()
}

func (s *Step) validate(v *validation.Validator, prefix string) {
	if err := validation.Validate(s); err != nil {
		v.Merge(prefix, err)
		return
	}
	switch s.Op {
	case OpWhere:
		v.Custom(s.Where != nil, prefix+".where", "is required")
	case OpSelect:
		v.Custom(len(s.Fields) > 0, prefix+".fields", "is required")
	case OpOrderBy, OpGroupBy:
		v.Required(prefix+".field", s.Field)
	case OpUnion, OpExcept:
		v.Custom(s.Records != nil, prefix+".records", "is required")
	}
	if s.Where != nil {
		v.Merge(prefix+".where", validation.Validate(s.Where))
	}
	for i := range s.Then {
		v.Merge(fmt.Sprintf("%s.then[%d]", prefix, i), validation.Validate(&s.Then[i]))
	}
}

func (t *Terminal) validate(v *validation.Validator) {
	if err := validation.Validate(t); err != nil {
		v.Merge("terminal", err)
		return
	}
	switch t.Op {
	case TermSum, TermAverage, TermMin, TermMax:
		v.Required("terminal.field", t.Field)
	case TermAll:
		v.Custom(t.Where != nil, "terminal.where", "is required")
	}
	v.Custom(!t.Optional || t.Op == TermFirst || t.Op == TermLast || t.Op == TermSingle,
		"terminal.optional", "only applies to first, last and single")
	if t.Where != nil {
		v.Merge("terminal.where", validation.Validate(t.Where))
	}
}
