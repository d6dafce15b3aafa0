package query

import (
	"regexp"
	"strings"
	"time"

	"github.com/okazakilab/trackdash/internal/model"
)

// Evaluate applies a single condition to a resolved field value. found is
// the second return of Lookup; it lets exists/notExists/isEmpty distinguish
// an absent field from a present null. The result is XORed with
// condition.Negate.
//
// Evaluation never panics on schema-valid input: unknown operators and type
// mismatches fail closed to false so one bad condition cannot abort a
// filter pass.
func Evaluate(resolved any, found bool, cond *model.FilterCondition) bool {
	return applyOperator(resolved, found, cond) != cond.Negate
}

func applyOperator(resolved any, found bool, cond *model.FilterCondition) bool {
	// Presence operators look only at found / null, not at the value shape.
	switch cond.Operator {
	case model.OpExists:
		return found && resolved != nil
	case model.OpNotExists:
		return !found || resolved == nil
	case model.OpIsEmpty:
		return !found || resolved == nil || resolved == ""
	case model.OpIsNotEmpty:
		return found && resolved != nil && resolved != ""
	}

	// Every other operator treats absence as a non-match.
	if !found {
		return false
	}
	value := model.ValueOf(resolved)

	switch cond.Operator {
	case model.OpEq:
		return equalFold(value, cond.Value, cond.CaseSensitive)
	case model.OpNe:
		return !equalFold(value, cond.Value, cond.CaseSensitive)
	case model.OpGt:
		return compareNumbers(value, cond.Value, func(a, b float64) bool { return a > b })
	case model.OpGte:
		return compareNumbers(value, cond.Value, func(a, b float64) bool { return a >= b })
	case model.OpLt:
		return compareNumbers(value, cond.Value, func(a, b float64) bool { return a < b })
	case model.OpLte:
		return compareNumbers(value, cond.Value, func(a, b float64) bool { return a <= b })
	case model.OpContains:
		s, sub := foldPair(value.Text(), cond.Value.Text(), cond.CaseSensitive)
		return strings.Contains(s, sub)
	case model.OpStartsWith:
		s, prefix := foldPair(value.Text(), cond.Value.Text(), cond.CaseSensitive)
		return strings.HasPrefix(s, prefix)
	case model.OpEndsWith:
		s, suffix := foldPair(value.Text(), cond.Value.Text(), cond.CaseSensitive)
		return strings.HasSuffix(s, suffix)
	case model.OpRegex:
		return matchRegex(value, cond)
	case model.OpIn:
		return member(value, cond.Value, cond.CaseSensitive)
	case model.OpNotIn:
		// A non-array condition value fails closed for both in and notIn.
		if cond.Value.Kind != model.KindArray {
			return false
		}
		return !member(value, cond.Value, cond.CaseSensitive)
	case model.OpBetween:
		return withinBounds(value, cond.Value)
	case model.OpRange:
		return withinRange(value, cond.Value)
	}

	// Unrecognized operator: fail closed.
	return false
}

func foldPair(a, b string, caseSensitive bool) (string, string) {
	if caseSensitive {
		return a, b
	}
	return strings.ToLower(a), strings.ToLower(b)
}

// equalFold is Value equality with optional case folding on strings.
// Folding has no effect on numeric or boolean comparisons.
func equalFold(a, b model.Value, caseSensitive bool) bool {
	if !caseSensitive && a.Kind == model.KindString && b.Kind == model.KindString {
		return strings.EqualFold(a.Str, b.Str)
	}
	return a.Equal(b)
}

func compareNumbers(a, b model.Value, cmp func(a, b float64) bool) bool {
	av, ok := a.AsNumber()
	if !ok {
		return false
	}
	bv, ok := b.AsNumber()
	if !ok {
		return false
	}
	return cmp(av, bv)
}

// matchRegex compiles the condition value as a pattern, case-insensitive
// unless the condition says otherwise. An invalid pattern degrades to a
// plain substring test rather than failing the whole condition.
func matchRegex(value model.Value, cond *model.FilterCondition) bool {
	pattern := cond.Value.Text()
	if !cond.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		s, sub := foldPair(value.Text(), cond.Value.Text(), cond.CaseSensitive)
		return strings.Contains(s, sub)
	}
	return re.MatchString(value.Text())
}

func member(v, set model.Value, caseSensitive bool) bool {
	if set.Kind != model.KindArray {
		return false
	}
	for _, item := range set.Arr {
		if equalFold(v, item, caseSensitive) {
			return true
		}
	}
	return false
}

// withinBounds tests lo <= v <= hi against a two-element numeric bound
// array. Both bounds are inclusive. A malformed bound evaluates to false.
func withinBounds(v, bound model.Value) bool {
	lo, hi, ok := boundPair(bound)
	if !ok {
		return false
	}
	n, ok := v.AsNumber()
	if !ok {
		return false
	}
	return n >= lo && n <= hi
}

// withinRange is withinBounds extended to RFC3339 timestamps: when the value
// and both bounds parse as instants, they compare as instants, inclusive.
func withinRange(v, bound model.Value) bool {
	if bound.Kind == model.KindArray && len(bound.Arr) == 2 {
		if t, ok := parseInstant(v); ok {
			lo, okLo := parseInstant(bound.Arr[0])
			hi, okHi := parseInstant(bound.Arr[1])
			if okLo && okHi {
				return !t.Before(lo) && !t.After(hi)
			}
		}
	}
	return withinBounds(v, bound)
}

func parseInstant(v model.Value) (time.Time, bool) {
	if v.Kind != model.KindString {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v.Str)
	return t, err == nil
}

func boundPair(bound model.Value) (lo, hi float64, ok bool) {
	if bound.Kind != model.KindArray || len(bound.Arr) != 2 {
		return 0, 0, false
	}
	lo, okLo := bound.Arr[0].AsNumber()
	hi, okHi := bound.Arr[1].AsNumber()
	return lo, hi, okLo && okHi
}
