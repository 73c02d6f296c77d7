package match

import (
	"reflect"
	"strings"

	"github.com/swingft/swiftexclude/internal/condlang"
	"github.com/swingft/swiftexclude/internal/value"
)

// checkOperator implements §4.4.2's operator semantics. present distinguishes
// an attribute that's absent entirely from one explicitly set to null: only
// == and != care about the difference.
func checkOperator(op condlang.Operator, attrVal any, present bool, rawValue string) bool {
	switch op {
	case condlang.OpEquals:
		if !present {
			return false
		}
		return equalValues(attrVal, value.Parse(rawValue))

	case condlang.OpNotEquals:
		if !present {
			return true
		}
		return !equalValues(attrVal, value.Parse(rawValue))

	case condlang.OpIn:
		list, ok := value.Parse(rawValue).([]any)
		if !ok {
			return false
		}
		for _, item := range list {
			if equalValues(attrVal, item) {
				return true
			}
		}
		return false

	case condlang.OpContains:
		lhs, ok1 := attrVal.(string)
		rhs, ok2 := value.Parse(rawValue).(string)
		return ok1 && ok2 && strings.Contains(lhs, rhs)

	case condlang.OpContainsAny:
		lhsList, ok1 := toStringSlice(attrVal)
		rhsList, ok2 := value.Parse(rawValue).([]any)
		if !ok1 || !ok2 {
			return false
		}
		wanted := make(map[string]bool, len(rhsList))
		for _, r := range rhsList {
			if s, ok := r.(string); ok {
				wanted[s] = true
			}
		}
		for _, l := range lhsList {
			if wanted[l] {
				return true
			}
		}
		return false

	case condlang.OpStartsWith:
		lhs, ok1 := attrVal.(string)
		rhs, ok2 := value.Parse(rawValue).(string)
		return ok1 && ok2 && strings.HasPrefix(lhs, rhs)

	default:
		return false
	}
}

// equalValues is structural equality with numeric normalization: an int64
// RHS literal must compare equal to a float64 LHS decoded from JSON, and
// vice versa.
func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if an, ok := toFloat64(a); ok {
		if bn, ok := toFloat64(b); ok {
			return an == bn
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// toStringSlice accepts both []any (the shape produced by decoding JSON
// attributes) and []string (an attribute set directly in Go) uniformly.
func toStringSlice(v any) ([]string, bool) {
	switch vv := v.(type) {
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case []string:
		return vv, true
	default:
		return nil, false
	}
}
