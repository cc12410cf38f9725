package recipe

import (
	"cmp"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/constraints"

	"github.com/kbukum/linqkit/errors"
)

func widen[N constraints.Integer | constraints.Float](n N) float64 {
	return float64(n)
}

// toFloat reports v as a float64 when it holds any Go number. Decoded JSON
// carries float64, decoded YAML carries int.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return widen(n), true
	case int:
		return widen(n), true
	case int8:
		return widen(n), true
	case int16:
		return widen(n), true
	case int32:
		return widen(n), true
	case int64:
		return widen(n), true
	case uint:
		return widen(n), true
	case uint8:
		return widen(n), true
	case uint16:
		return widen(n), true
	case uint32:
		return widen(n), true
	case uint64:
		return widen(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// compareValues orders two values of field. Missing values sort first;
// numbers, strings and booleans compare among their own kind only.
func compareValues(field string, a, b any) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return -1, nil
	case b == nil:
		return 1, nil
	}
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y), nil
		}
	}
	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), nil
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0, nil
			case !x:
				return -1, nil
			}
			return 1, nil
		}
	}
	return 0, errors.InvalidInput(field, fmt.Sprintf("cannot compare %T with %T", a, b))
}

func equalValues(a, b any) bool {
	if x, ok := toFloat(a); ok {
		y, ok := toFloat(b)
		return ok && x == y
	}
	return reflect.DeepEqual(a, b)
}

// keyOf returns a canonical string for v so that values equal under
// equalValues share a key.
func keyOf(v any) string {
	if n, ok := toFloat(v); ok {
		return "n:" + strconv.FormatFloat(n, 'g', -1, 64)
	}
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return "s:" + x
	case bool:
		return "b:" + strconv.FormatBool(x)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("v:%v", v)
	}
	return "j:" + string(data)
}

func recordKey(r Record) string {
	return keyOf(map[string]any(r))
}

// match evaluates c against r.
func (c *Condition) match(r Record) (bool, error) {
	got, present := r[c.Field]
	switch c.Cmp {
	case CmpExists:
		if want, ok := c.Value.(bool); ok && !want {
			return !present, nil
		}
		return present, nil
	case CmpEq:
		return equalValues(got, c.Value), nil
	case CmpNe:
		return !equalValues(got, c.Value), nil
	case CmpContains:
		switch x := got.(type) {
		case string:
			s, ok := c.Value.(string)
			if !ok {
				return false, errors.InvalidInput(c.Field, fmt.Sprintf("contains on a string needs a string, got %T", c.Value))
			}
			return strings.Contains(x, s), nil
		case []any:
			return lo.ContainsBy(x, func(item any) bool { return equalValues(item, c.Value) }), nil
		case nil:
			return false, nil
		}
		return false, errors.InvalidInput(c.Field, fmt.Sprintf("contains is not defined on %T", got))
	}

	if got == nil {
		return false, nil
	}
	order, err := compareValues(c.Field, got, c.Value)
	if err != nil {
		return false, err
	}
	switch c.Cmp {
	case CmpGt:
		return order > 0, nil
	case CmpGte:
		return order >= 0, nil
	case CmpLt:
		return order < 0, nil
	case CmpLte:
		return order <= 0, nil
	}
	return false, errors.InvalidInput("cmp", "unknown comparison "+c.Cmp)
}
