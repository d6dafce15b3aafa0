package server

import (
	"encoding/json"
	"net/http"

	"github.com/okazakilab/trackdash/internal/events"
	"github.com/okazakilab/trackdash/internal/model"
	"github.com/okazakilab/trackdash/internal/query"
	"github.com/okazakilab/trackdash/internal/store"
)

// searchInput is the request body for POST /v1/search. When Highlight is set,
// the matched terms are wrapped in <mark> tags in each returned title and body.
type searchInput struct {
	model.SearchRequest
	Highlight bool `json:"highlight,omitempty"`
}

// handleSearch handles POST /v1/search. The full dataset is loaded and the
// pipeline runs in memory so total_count always reflects the whole corpus,
// not a SQL-prefiltered subset.
func (s *DashServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var in searchInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := model.ValidateSearchRequest(&in.SearchRequest); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	issues, _, err := s.store.ListIssues(r.Context(), store.IssueFilter{})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load issues")
		return
	}

	result := query.Search(issues, &in.SearchRequest)

	if in.Highlight && len(result.HighlightTerms) > 0 {
		marked := make([]*model.Issue, len(result.Issues))
		for i, issue := range result.Issues {
			marked[i] = query.HighlightIssue(issue, result.HighlightTerms)
		}
		result.Issues = marked
	}

	s.publish(r.Context(), events.TopicSearchPerformed, events.SearchPerformed{
		Query:         in.Query,
		TotalCount:    result.TotalCount,
		MatchingCount: result.MatchingCount,
		SearchTimeMs:  result.SearchTimeMs,
	})

	writeJSON(w, http.StatusOK, result)
}

// filterInput is the request body for POST /v1/issues/filter: arbitrary JSON
// records plus a filter group forest to apply to them.
type filterInput struct {
	Records []query.Record       `json:"records"`
	Groups  []*model.FilterGroup `json:"groups"`
}

// handleFilterRecords handles POST /v1/issues/filter. It exposes the generic
// filter tree directly, for callers that bring their own record shapes.
func (s *DashServer) handleFilterRecords(w http.ResponseWriter, r *http.Request) {
	var in filterInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	for _, g := range in.Groups {
		if err := model.ValidateGroup(g); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	kept := query.ApplyFilters(in.Records, in.Groups)
	if kept == nil {
		kept = []query.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records":        kept,
		"matching_count": len(kept),
	})
}
