package model

import (
	"strconv"
	"strings"
)

// ValidationError holds a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation failure on a named field.
type FieldError struct {
	Field   string
	Message string
}

// Error formats the validation error as a semicolon-separated list of field messages.
func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// HasErrors reports whether the validation error contains any field errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// ValidateCondition checks a FilterCondition for constraint violations.
// The evaluator itself never validates; malformed conditions are rejected
// here, at the schema boundary, before reaching evaluation.
func ValidateCondition(c *FilterCondition) error {
	var ve ValidationError
	validateCondition(c, "", &ve)
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func validateCondition(c *FilterCondition, prefix string, ve *ValidationError) {
	name := func(f string) string {
		if prefix == "" {
			return f
		}
		return prefix + "." + f
	}

	if strings.TrimSpace(c.Field) == "" {
		ve.Errors = append(ve.Errors, FieldError{Field: name("field"), Message: "is required"})
	}
	if !c.Operator.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: name("operator"), Message: "unknown operator " + string(c.Operator)})
	}

	switch c.Operator {
	case OpIn, OpNotIn:
		if c.Value.Kind != KindArray {
			ve.Errors = append(ve.Errors, FieldError{Field: name("value"), Message: "must be an array for " + string(c.Operator)})
		}
	case OpBetween, OpRange:
		if c.Value.Kind != KindArray || len(c.Value.Arr) != 2 {
			ve.Errors = append(ve.Errors, FieldError{Field: name("value"), Message: "must be a two-element bound array for " + string(c.Operator)})
		}
	}
}

// ValidateGroup checks a FilterGroup tree for constraint violations.
func ValidateGroup(g *FilterGroup) error {
	var ve ValidationError
	validateGroup(g, "group", &ve)
	if ve.HasErrors() {
		return &ve
	}
	return nil
}

func validateGroup(g *FilterGroup, prefix string, ve *ValidationError) {
	if g.Operator != "" && !g.Operator.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: prefix + ".operator", Message: "unknown group operator " + string(g.Operator)})
	}
	for i, c := range g.Conditions {
		validateCondition(c, prefix+".conditions["+strconv.Itoa(i)+"]", ve)
	}
	for i, sub := range g.Groups {
		validateGroup(sub, prefix+".groups["+strconv.Itoa(i)+"]", ve)
	}
}

// ValidateSearchRequest checks a SearchRequest for constraint violations.
func ValidateSearchRequest(r *SearchRequest) error {
	var ve ValidationError

	if s := r.Filters.State; s != "" && s != StateAll && !s.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "filters.state", Message: "must be open, closed, or all"})
	}
	if r.SortBy != "" && !r.SortBy.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "sort_by", Message: "unknown sort field " + string(r.SortBy)})
	}
	if r.SortOrder != "" && !r.SortOrder.IsValid() {
		ve.Errors = append(ve.Errors, FieldError{Field: "sort_order", Message: "must be asc or desc"})
	}
	for id, o := range r.Overrides {
		if !o.Priority.IsValid() {
			ve.Errors = append(ve.Errors, FieldError{
				Field:   "classification_overrides." + id,
				Message: "unknown priority level " + string(o.Priority),
			})
		}
	}

	if ve.HasErrors() {
		return &ve
	}
	return nil
}
