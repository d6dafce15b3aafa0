package model

// Operator is a comparison applied between a resolved field value and a
// condition value.
type Operator string

const (
	OpEq         Operator = "eq"
	OpNe         Operator = "ne"
	OpGt         Operator = "gt"
	OpGte        Operator = "gte"
	OpLt         Operator = "lt"
	OpLte        Operator = "lte"
	OpContains   Operator = "contains"
	OpStartsWith Operator = "startsWith"
	OpEndsWith   Operator = "endsWith"
	OpRegex      Operator = "regex"
	OpIn         Operator = "in"
	OpNotIn      Operator = "notIn"
	OpExists     Operator = "exists"
	OpNotExists  Operator = "notExists"
	OpIsEmpty    Operator = "isEmpty"
	OpIsNotEmpty Operator = "isNotEmpty"
	OpBetween    Operator = "between"
	OpRange      Operator = "range"
)

// String returns the string representation of the operator.
func (o Operator) String() string {
	return string(o)
}

// IsValid checks whether the operator is a known value.
func (o Operator) IsValid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte,
		OpContains, OpStartsWith, OpEndsWith, OpRegex,
		OpIn, OpNotIn, OpExists, OpNotExists,
		OpIsEmpty, OpIsNotEmpty, OpBetween, OpRange:
		return true
	}
	return false
}

// GroupOperator combines the results within a filter group.
type GroupOperator string

const (
	GroupAnd GroupOperator = "and"
	GroupOr  GroupOperator = "or"
)

// String returns the string representation of the group operator.
func (o GroupOperator) String() string {
	return string(o)
}

// IsValid checks whether the group operator is a known value.
func (o GroupOperator) IsValid() bool {
	return o == GroupAnd || o == GroupOr
}

// FilterCondition is a single field comparison. It is immutable once
// constructed; defaulting happens in NewCondition, never in the evaluator.
type FilterCondition struct {
	Field         string   `json:"field"`
	Operator      Operator `json:"operator"`
	Value         Value    `json:"value"`
	CaseSensitive bool     `json:"case_sensitive,omitempty"`
	Negate        bool     `json:"negate,omitempty"`
}

// NewCondition builds a case-insensitive, non-negated condition.
func NewCondition(field string, op Operator, value Value) *FilterCondition {
	return &FilterCondition{Field: field, Operator: op, Value: value}
}

// FilterGroup is a node in the boolean filter tree: a set of conditions and
// nested sub-groups combined with a single group operator. The tree must be
// finite and acyclic; evaluation recurses without depth tracking.
type FilterGroup struct {
	Operator   GroupOperator      `json:"operator"`
	Conditions []*FilterCondition `json:"conditions,omitempty"`
	Groups     []*FilterGroup     `json:"groups,omitempty"`
}

// NewGroup builds a group, defaulting a missing operator to "and".
func NewGroup(op GroupOperator, conditions ...*FilterCondition) *FilterGroup {
	if op == "" {
		op = GroupAnd
	}
	return &FilterGroup{Operator: op, Conditions: conditions}
}

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// IsValid checks whether the sort order is a known value.
func (o SortOrder) IsValid() bool {
	return o == SortAsc || o == SortDesc
}

// SortField selects the comparison key for sorting issues.
type SortField string

const (
	SortByCreated  SortField = "created"
	SortByUpdated  SortField = "updated"
	SortByPriority SortField = "priority"
	SortByNumber   SortField = "number"
)

// IsValid checks whether the sort field is a known value.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreated, SortByUpdated, SortByPriority, SortByNumber:
		return true
	}
	return false
}

// SortKey describes one entry of a generic sort specification.
type SortKey struct {
	Field         string    `json:"field"`
	Direction     SortOrder `json:"direction"`
	NullsFirst    bool      `json:"nulls_first,omitempty"`
	CaseSensitive bool      `json:"case_sensitive,omitempty"`
}

// NewSortKey builds a sort key with the defaults applied: ascending
// direction, nulls last, case-sensitive comparison.
func NewSortKey(field string) *SortKey {
	return &SortKey{Field: field, Direction: SortAsc, CaseSensitive: true}
}
