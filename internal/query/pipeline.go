package query

import (
	"strings"
	"time"

	"github.com/okazakilab/trackdash/internal/model"
)

// Search runs the full pipeline over an in-memory issue slice: free-text
// filter, shallow SearchFilters, stable sort, and result packaging. Each
// call is independent and side-effect-free; the input slice and the issues
// it points to are never mutated.
func Search(issues []*model.Issue, req *model.SearchRequest) *model.SearchResult {
	start := time.Now()

	matched := issues
	highlightTerms := []string{}

	if strings.TrimSpace(req.Query) != "" {
		highlightTerms = Tokenize(req.Query)
		matched = keep(matched, func(i *model.Issue) bool {
			return MatchesQuery(i, req.Query)
		})
	}

	matched = applySearchFilters(matched, &req.Filters)

	if req.SortBy != "" {
		key := model.NewSortKey(string(req.SortBy))
		if req.SortOrder != "" {
			key.Direction = req.SortOrder
		}
		// Copy before sorting so the caller's slice order is untouched.
		sorted := make([]*model.Issue, len(matched))
		copy(sorted, matched)
		SortIssues(sorted, key, req.Overrides)
		matched = sorted
	}

	if matched == nil {
		matched = []*model.Issue{}
	}

	return &model.SearchResult{
		Issues:         matched,
		TotalCount:     len(issues),
		MatchingCount:  len(matched),
		SearchTimeMs:   float64(time.Since(start)) / float64(time.Millisecond),
		HighlightTerms: highlightTerms,
	}
}

func applySearchFilters(issues []*model.Issue, f *model.SearchFilters) []*model.Issue {
	if f.State != "" && f.State != model.StateAll {
		issues = keep(issues, func(i *model.Issue) bool { return i.State == f.State })
	}

	if len(f.Labels) > 0 {
		issues = keep(issues, func(i *model.Issue) bool {
			for _, want := range f.Labels {
				if !i.HasLabel(want) {
					return false
				}
			}
			return true
		})
	}

	if f.Author != "" {
		issues = keep(issues, func(i *model.Issue) bool {
			return strings.EqualFold(i.User.Login, f.Author)
		})
	}

	if f.Assignee != "" {
		issues = keep(issues, func(i *model.Issue) bool {
			for _, a := range i.Assignees {
				if strings.EqualFold(a.Login, f.Assignee) {
					return true
				}
			}
			return false
		})
	}

	if f.DateRange != nil {
		issues = keep(issues, func(i *model.Issue) bool {
			return f.DateRange.Contains(i.CreatedAt)
		})
	}

	return issues
}

// keep filters without mutating the input slice.
func keep(issues []*model.Issue, pred func(*model.Issue) bool) []*model.Issue {
	out := make([]*model.Issue, 0, len(issues))
	for _, i := range issues {
		if pred(i) {
			out = append(out, i)
		}
	}
	return out
}

// HighlightIssue returns a copy of the issue with the terms marked in its
// title and body. The stored issue is left untouched.
func HighlightIssue(issue *model.Issue, terms []string) *model.Issue {
	if len(terms) == 0 {
		return issue
	}
	clone := *issue
	clone.Title = Highlight(issue.Title, terms)
	clone.Body = Highlight(issue.Body, terms)
	return &clone
}
