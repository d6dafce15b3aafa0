package query

import (
	"testing"
	"time"

	"github.com/okazakilab/trackdash/internal/model"
)

// sortKey builds a key for the given field and direction.
func sortKey(field model.SortField, order model.SortOrder) *model.SortKey {
	k := model.NewSortKey(string(field))
	k.Direction = order
	return k
}

func labeled(id string, names ...string) *model.Issue {
	labels := make([]model.Label, len(names))
	for i, n := range names {
		labels[i] = model.Label{Name: n}
	}
	return &model.Issue{ID: id, Labels: labels}
}

func TestPriorityOf(t *testing.T) {
	for _, tc := range []struct {
		name      string
		issue     *model.Issue
		overrides map[string]model.PriorityOverride
		want      int
	}{
		{"critical label", labeled("is-1", "priority: critical"), nil, 4},
		{"high label", labeled("is-2", "priority: high"), nil, 3},
		{"medium label", labeled("is-3", "priority: medium"), nil, 2},
		{"low label", labeled("is-4", "priority: low"), nil, 1},
		{"no priority label", labeled("is-5", "bug"), nil, 0},
		{"label case-insensitive", labeled("is-6", "Priority: HIGH"), nil, 3},
		{
			"precedence among multiple labels",
			labeled("is-7", "priority: low", "priority: critical"),
			nil,
			4,
		},
		{
			"override beats label",
			labeled("is-8", "priority: low"),
			map[string]model.PriorityOverride{"is-8": {Priority: model.PriorityCritical}},
			4,
		},
		{
			"override for other issue ignored",
			labeled("is-9", "priority: low"),
			map[string]model.PriorityOverride{"is-8": {Priority: model.PriorityCritical}},
			1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := PriorityOf(tc.issue, tc.overrides); got != tc.want {
				t.Errorf("PriorityOf() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSortIssues_PriorityDesc(t *testing.T) {
	issues := []*model.Issue{
		labeled("is-low", "priority: low"),
		labeled("is-critical", "priority: critical"),
		labeled("is-medium", "priority: medium"),
	}

	SortIssues(issues, sortKey(model.SortByPriority, model.SortDesc), nil)

	want := []string{"is-critical", "is-medium", "is-low"}
	for i, id := range want {
		if issues[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, issues[i].ID, id)
		}
	}
}

func TestSortIssues_OverrideWins(t *testing.T) {
	issues := []*model.Issue{
		labeled("is-1", "priority: high"),
		labeled("is-2", "priority: low"),
	}
	overrides := map[string]model.PriorityOverride{
		"is-2": {Priority: model.PriorityCritical},
	}

	SortIssues(issues, sortKey(model.SortByPriority, model.SortDesc), overrides)

	if issues[0].ID != "is-2" {
		t.Errorf("overridden issue sorted at %s, want first", issues[0].ID)
	}
}

func TestSortIssues_Timestamps(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issues := []*model.Issue{
		{ID: "b", CreatedAt: t0.Add(2 * time.Hour), UpdatedAt: t0},
		{ID: "a", CreatedAt: t0, UpdatedAt: t0.Add(time.Hour)},
	}

	SortIssues(issues, sortKey(model.SortByCreated, model.SortAsc), nil)
	if issues[0].ID != "a" {
		t.Errorf("created asc: first = %s, want a", issues[0].ID)
	}

	SortIssues(issues, sortKey(model.SortByUpdated, model.SortDesc), nil)
	if issues[0].ID != "a" {
		t.Errorf("updated desc: first = %s, want a", issues[0].ID)
	}
}

// A bare NewSortKey sorts ascending without further configuration.
func TestSortIssues_KeyDefaults(t *testing.T) {
	issues := []*model.Issue{
		{ID: "y", Number: 7},
		{ID: "x", Number: 2},
	}
	SortIssues(issues, model.NewSortKey(string(model.SortByNumber)), nil)
	if issues[0].Number != 2 {
		t.Errorf("default key: first = %d, want 2", issues[0].Number)
	}
}

func TestSortIssues_Number(t *testing.T) {
	issues := []*model.Issue{
		{ID: "x", Number: 12},
		{ID: "y", Number: 3},
	}
	SortIssues(issues, sortKey(model.SortByNumber, model.SortAsc), nil)
	if issues[0].Number != 3 {
		t.Errorf("number asc: first = %d, want 3", issues[0].Number)
	}
}

// Equal keys must preserve input order in both directions.
func TestSortIssues_Stable(t *testing.T) {
	issues := []*model.Issue{
		labeled("first", "priority: high"),
		labeled("second", "priority: high"),
		labeled("third", "priority: high"),
	}

	for _, order := range []model.SortOrder{model.SortAsc, model.SortDesc} {
		SortIssues(issues, sortKey(model.SortByPriority, order), nil)
		for i, id := range []string{"first", "second", "third"} {
			if issues[i].ID != id {
				t.Errorf("order %s: position %d = %s, want %s", order, i, issues[i].ID, id)
			}
		}
	}
}
