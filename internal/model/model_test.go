package model

import (
	"encoding/json"
	"testing"
	"time"
)

func timeMustParse(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parsing %q: %v", s, err)
	}
	return ts
}

func TestState_IsValid(t *testing.T) {
	for _, tc := range []struct {
		state State
		want  bool
	}{
		{StateOpen, true},
		{StateClosed, true},
		{StateAll, false}, // filter-only value
		{State(""), false},
		{State("bogus"), false},
	} {
		if got := tc.state.IsValid(); got != tc.want {
			t.Errorf("State(%q).IsValid() = %v, want %v", tc.state, got, tc.want)
		}
	}
}

func TestOperator_IsValid(t *testing.T) {
	known := []Operator{
		OpEq, OpNe, OpGt, OpGte, OpLt, OpLte,
		OpContains, OpStartsWith, OpEndsWith, OpRegex,
		OpIn, OpNotIn, OpExists, OpNotExists,
		OpIsEmpty, OpIsNotEmpty, OpBetween, OpRange,
	}
	if len(known) != 18 {
		t.Fatalf("expected 18 operators, have %d", len(known))
	}
	for _, op := range known {
		if !op.IsValid() {
			t.Errorf("Operator(%q).IsValid() = false, want true", op)
		}
	}
	for _, op := range []Operator{"", "like", "EQ"} {
		if op.IsValid() {
			t.Errorf("Operator(%q).IsValid() = true, want false", op)
		}
	}
}

func TestPriorityLevel_Rank(t *testing.T) {
	for _, tc := range []struct {
		level PriorityLevel
		want  int
	}{
		{PriorityCritical, 4},
		{PriorityHigh, 3},
		{PriorityMedium, 2},
		{PriorityLow, 1},
		{PriorityLevel("urgent"), 0},
		{PriorityLevel(""), 0},
	} {
		if got := tc.level.Rank(); got != tc.want {
			t.Errorf("PriorityLevel(%q).Rank() = %d, want %d", tc.level, got, tc.want)
		}
	}
}

func TestIssue_LabelHelpers(t *testing.T) {
	issue := &Issue{Labels: []Label{{Name: "bug"}, {Name: "priority: high"}}}

	if !issue.HasLabel("bug") {
		t.Error("HasLabel(bug) = false")
	}
	if issue.HasLabel("docs") {
		t.Error("HasLabel(docs) = true")
	}
	names := issue.LabelNames()
	if len(names) != 2 || names[1] != "priority: high" {
		t.Errorf("LabelNames() = %v", names)
	}
	if (&Issue{}).LabelNames() != nil {
		t.Error("LabelNames on unlabeled issue should be nil")
	}
}

func TestValueOf(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   any
		want Kind
	}{
		{"nil", nil, KindNull},
		{"string", "x", KindString},
		{"float64", 1.5, KindNumber},
		{"int", 3, KindNumber},
		{"bool", true, KindBool},
		{"any slice", []any{"a", float64(1)}, KindArray},
		{"string slice", []string{"a"}, KindArray},
		{"unsupported", struct{}{}, KindInvalid},
	} {
		if got := ValueOf(tc.in).Kind; got != tc.want {
			t.Errorf("%s: ValueOf kind = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValue_Equal(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b Value
		want bool
	}{
		{"strings equal", String("x"), String("x"), true},
		{"strings differ", String("x"), String("y"), false},
		{"numbers equal", Number(2), Number(2), true},
		{"nulls equal", Null(), Null(), true},
		{"null vs string", Null(), String(""), false},
		{"string vs number", String("2"), Number(2), false},
		{"arrays equal", Array(String("a")), Array(String("a")), true},
		{"arrays differ in length", Array(String("a")), Array(String("a"), String("b")), false},
	} {
		if got := tc.a.Equal(tc.b); got != tc.want {
			t.Errorf("%s: Equal = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestValue_JSON(t *testing.T) {
	for _, tc := range []struct {
		name string
		json string
		want Value
	}{
		{"string", `"open"`, String("open")},
		{"number", `3.5`, Number(3.5)},
		{"bool", `true`, Boolean(true)},
		{"null", `null`, Null()},
		{"array", `["a",1]`, Array(String("a"), Number(1))},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var v Value
			if err := json.Unmarshal([]byte(tc.json), &v); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !v.Equal(tc.want) {
				t.Errorf("unmarshaled %+v, want %+v", v, tc.want)
			}

			out, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Value
			if err := json.Unmarshal(out, &back); err != nil {
				t.Fatalf("re-unmarshal: %v", err)
			}
			if !back.Equal(tc.want) {
				t.Errorf("round trip produced %+v, want %+v", back, tc.want)
			}
		})
	}
}

func TestFilterCondition_JSON(t *testing.T) {
	in := `{"field":"state","operator":"eq","value":"open","negate":true}`
	var c FilterCondition
	if err := json.Unmarshal([]byte(in), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.Field != "state" || c.Operator != OpEq || !c.Negate {
		t.Errorf("decoded %+v", c)
	}
	if !c.Value.Equal(String("open")) {
		t.Errorf("value = %+v, want string open", c.Value)
	}
	if c.CaseSensitive {
		t.Error("CaseSensitive should default to false")
	}
}

func TestNewSortKey_Defaults(t *testing.T) {
	k := NewSortKey("created_at")
	if k.Field != "created_at" {
		t.Errorf("Field = %q", k.Field)
	}
	if k.Direction != SortAsc {
		t.Errorf("Direction = %q, want asc", k.Direction)
	}
	if k.NullsFirst {
		t.Error("NullsFirst should default to false")
	}
	if !k.CaseSensitive {
		t.Error("CaseSensitive should default to true")
	}
}

func TestDateRange_Contains(t *testing.T) {
	r := &DateRange{}
	if !r.Contains(timeMustParse(t, "2024-06-01T00:00:00Z")) {
		t.Error("unbounded range should contain everything")
	}

	r = &DateRange{
		Start: timeMustParse(t, "2024-01-01T00:00:00Z"),
		End:   timeMustParse(t, "2024-12-31T00:00:00Z"),
	}
	for _, tc := range []struct {
		ts   string
		want bool
	}{
		{"2024-06-01T00:00:00Z", true},
		{"2024-01-01T00:00:00Z", true}, // inclusive start
		{"2024-12-31T00:00:00Z", true}, // inclusive end
		{"2023-12-31T23:59:59Z", false},
		{"2025-01-01T00:00:00Z", false},
	} {
		if got := r.Contains(timeMustParse(t, tc.ts)); got != tc.want {
			t.Errorf("Contains(%s) = %v, want %v", tc.ts, got, tc.want)
		}
	}
}
