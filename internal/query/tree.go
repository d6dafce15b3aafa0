package query

import "github.com/okazakilab/trackdash/internal/model"

// EvaluateGroup computes the boolean result of a filter group against one
// record: every condition is evaluated via Evaluate and every sub-group
// recursively via EvaluateGroup, then the results are combined with AND or
// OR semantics per the group operator.
//
// Empty groups follow the boolean identities: all-of-nothing is true under
// "and", any-of-nothing is false under "or".
func EvaluateGroup(rec Record, g *model.FilterGroup) bool {
	op := g.Operator
	if op == "" {
		op = model.GroupAnd
	}

	if op == model.GroupOr {
		for _, c := range g.Conditions {
			v, found := Lookup(rec, c.Field)
			if Evaluate(v, found, c) {
				return true
			}
		}
		for _, sub := range g.Groups {
			if EvaluateGroup(rec, sub) {
				return true
			}
		}
		return false
	}

	for _, c := range g.Conditions {
		v, found := Lookup(rec, c.Field)
		if !Evaluate(v, found, c) {
			return false
		}
	}
	for _, sub := range g.Groups {
		if !EvaluateGroup(rec, sub) {
			return false
		}
	}
	return true
}

// ApplyFilters keeps the records for which every top-level group evaluates
// true; the group slice itself is an implicit AND. An empty slice is the
// identity and returns the input unchanged. Input order is preserved and
// the input slice is never mutated.
func ApplyFilters(records []Record, groups []*model.FilterGroup) []Record {
	if len(groups) == 0 {
		return records
	}

	kept := make([]Record, 0, len(records))
outer:
	for _, rec := range records {
		for _, g := range groups {
			if !EvaluateGroup(rec, g) {
				continue outer
			}
		}
		kept = append(kept, rec)
	}
	return kept
}
