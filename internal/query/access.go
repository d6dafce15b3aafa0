// Package query implements the record filter-and-search engine: dot-path
// field access, the condition operator evaluator, recursive filter tree
// evaluation, free-text matching with highlighting, sorting, and the
// search pipeline that composes them.
//
// The engine is synchronous and stateless: every function takes its full
// input and returns a complete output, mutating nothing. Callers may invoke
// it concurrently as long as they do not mutate the shared record slice.
package query

import "strings"

// Record is one JSON-shaped item being filtered. The engine is generic over
// its layout; the dashboard feeds it issue objects.
type Record = map[string]any

// Lookup resolves a dot-separated path against a record. The second return
// distinguishes "absent" from "present but null": Lookup(r, "a.b") returns
// (nil, true) when b exists and holds null, and (nil, false) when any path
// segment is missing or a non-object is traversed. Absence is a normal
// outcome, never an error.
func Lookup(rec Record, path string) (any, bool) {
	var current any = map[string]any(rec)
	for _, seg := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
