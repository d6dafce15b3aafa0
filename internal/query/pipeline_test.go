package query

import (
	"reflect"
	"testing"
	"time"

	"github.com/okazakilab/trackdash/internal/model"
)

func testIssues() []*model.Issue {
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []*model.Issue{
		{
			ID: "is-1", Number: 1,
			Title: "Bug in authentication",
			Body:  "fix applied",
			State: model.StateOpen,
			User:  model.User{Login: "alice"},
			Labels: []model.Label{
				{Name: "bug"}, {Name: "priority: high"},
			},
			Assignees: []model.User{{Login: "bob"}},
			CreatedAt: t0,
			UpdatedAt: t0.Add(time.Hour),
		},
		{
			ID: "is-2", Number: 2,
			Title:     "Update documentation",
			Body:      "the readme is stale",
			State:     model.StateClosed,
			User:      model.User{Login: "bob"},
			Labels:    []model.Label{{Name: "docs"}, {Name: "priority: low"}},
			CreatedAt: t0.Add(24 * time.Hour),
			UpdatedAt: t0.Add(25 * time.Hour),
		},
		{
			ID: "is-3", Number: 3,
			Title:     "Login page styling",
			Body:      "button overlaps input",
			State:     model.StateOpen,
			User:      model.User{Login: "carol"},
			Labels:    []model.Label{{Name: "frontend"}, {Name: "priority: medium"}},
			Assignees: []model.User{{Login: "alice"}, {Login: "bob"}},
			CreatedAt: t0.Add(48 * time.Hour),
			UpdatedAt: t0.Add(49 * time.Hour),
		},
	}
}

func TestSearch_TextQuery(t *testing.T) {
	issues := testIssues()

	res := Search(issues, &model.SearchRequest{Query: "bug fix"})

	if res.MatchingCount != 1 || res.Issues[0].ID != "is-1" {
		t.Fatalf("got %d matches, want just is-1", res.MatchingCount)
	}
	if res.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", res.TotalCount)
	}
	if want := []string{"bug", "fix"}; !reflect.DeepEqual(res.HighlightTerms, want) {
		t.Errorf("HighlightTerms = %v, want %v", res.HighlightTerms, want)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	res := Search(testIssues(), &model.SearchRequest{})

	if res.MatchingCount != 3 {
		t.Errorf("MatchingCount = %d, want 3", res.MatchingCount)
	}
	if len(res.HighlightTerms) != 0 {
		t.Errorf("HighlightTerms = %v, want empty", res.HighlightTerms)
	}
	if res.SearchTimeMs < 0 {
		t.Errorf("SearchTimeMs = %v, want >= 0", res.SearchTimeMs)
	}
}

func TestSearch_ShallowFilters(t *testing.T) {
	issues := testIssues()

	for _, tc := range []struct {
		name    string
		filters model.SearchFilters
		wantIDs []string
	}{
		{"state open", model.SearchFilters{State: model.StateOpen}, []string{"is-1", "is-3"}},
		{"state all is no-op", model.SearchFilters{State: model.StateAll}, []string{"is-1", "is-2", "is-3"}},
		{"label containment", model.SearchFilters{Labels: []string{"bug", "priority: high"}}, []string{"is-1"}},
		{"author case-insensitive", model.SearchFilters{Author: "ALICE"}, []string{"is-1"}},
		{"assignee matches any", model.SearchFilters{Assignee: "bob"}, []string{"is-1", "is-3"}},
		{
			"date range on created",
			model.SearchFilters{DateRange: &model.DateRange{
				Start: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
				End:   time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC),
			}},
			[]string{"is-2"},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			res := Search(issues, &model.SearchRequest{Filters: tc.filters})
			var ids []string
			for _, i := range res.Issues {
				ids = append(ids, i.ID)
			}
			if !reflect.DeepEqual(ids, tc.wantIDs) {
				t.Errorf("got %v, want %v", ids, tc.wantIDs)
			}
		})
	}
}

func TestSearch_SortByPriorityDesc(t *testing.T) {
	res := Search(testIssues(), &model.SearchRequest{
		SortBy:    model.SortByPriority,
		SortOrder: model.SortDesc,
	})

	want := []string{"is-1", "is-3", "is-2"} // high, medium, low
	for i, id := range want {
		if res.Issues[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, res.Issues[i].ID, id)
		}
	}
}

func TestSearch_OverridesApply(t *testing.T) {
	res := Search(testIssues(), &model.SearchRequest{
		SortBy:    model.SortByPriority,
		SortOrder: model.SortDesc,
		Overrides: map[string]model.PriorityOverride{
			"is-2": {Priority: model.PriorityCritical},
		},
	})

	if res.Issues[0].ID != "is-2" {
		t.Errorf("first = %s, want is-2 (override to critical)", res.Issues[0].ID)
	}
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	issues := testIssues()
	before := make([]string, len(issues))
	for i, is := range issues {
		before[i] = is.ID
	}

	Search(issues, &model.SearchRequest{
		Query:     "login",
		SortBy:    model.SortByCreated,
		SortOrder: model.SortDesc,
	})

	for i, is := range issues {
		if is.ID != before[i] {
			t.Fatalf("input slice reordered at %d: %s", i, is.ID)
		}
	}
}

func TestHighlightIssue(t *testing.T) {
	issue := testIssues()[0]
	marked := HighlightIssue(issue, []string{"bug", "fix"})

	if marked.Title != "<mark>Bug</mark> in authentication" {
		t.Errorf("Title = %q", marked.Title)
	}
	if marked.Body != "<mark>fix</mark> applied" {
		t.Errorf("Body = %q", marked.Body)
	}
	if issue.Title != "Bug in authentication" {
		t.Error("source issue was mutated")
	}
}
