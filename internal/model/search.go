package model

import "time"

// PriorityLevel is an explicit classification for an issue.
type PriorityLevel string

const (
	PriorityCritical PriorityLevel = "critical"
	PriorityHigh     PriorityLevel = "high"
	PriorityMedium   PriorityLevel = "medium"
	PriorityLow      PriorityLevel = "low"
)

// Rank maps the level to its sort weight. Unknown levels rank 0, below low.
func (p PriorityLevel) Rank() int {
	switch p {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IsValid checks whether the priority level is a known value.
func (p PriorityLevel) IsValid() bool {
	return p.Rank() > 0
}

// PriorityOverride is an externally supplied classification for one issue.
// When present it takes precedence over label-derived priority.
type PriorityOverride struct {
	Priority PriorityLevel `json:"priority"`
}

// DateRange bounds the creation timestamp, inclusive on both ends.
// A zero Start or End leaves that side unbounded.
type DateRange struct {
	Start time.Time `json:"start,omitempty"`
	End   time.Time `json:"end,omitempty"`
}

// Contains reports whether t falls inside the range.
func (r *DateRange) Contains(t time.Time) bool {
	if !r.Start.IsZero() && t.Before(r.Start) {
		return false
	}
	if !r.End.IsZero() && t.After(r.End) {
		return false
	}
	return true
}

// SearchFilters is the fixed, shallow filter shape the issue pipeline
// applies on top of (not instead of) the generic filter tree.
type SearchFilters struct {
	State     State      `json:"state,omitempty"` // open, closed, or all
	Labels    []string   `json:"labels,omitempty"`
	Author    string     `json:"author,omitempty"`
	Assignee  string     `json:"assignee,omitempty"`
	DateRange *DateRange `json:"date_range,omitempty"`
}

// SearchRequest is one full search invocation: free-text query, shallow
// filters, sort selection, and optional priority overrides keyed by issue ID.
type SearchRequest struct {
	Query     string                      `json:"query"`
	Filters   SearchFilters               `json:"filters"`
	SortBy    SortField                   `json:"sort_by,omitempty"`
	SortOrder SortOrder                   `json:"sort_order,omitempty"`
	Overrides map[string]PriorityOverride `json:"classification_overrides,omitempty"`
}

// SearchResult is the value object produced by one search call. A fresh
// result is built per call; the engine retains nothing between calls.
type SearchResult struct {
	Issues         []*Issue `json:"issues"`
	TotalCount     int      `json:"total_count"`
	MatchingCount  int      `json:"matching_count"`
	SearchTimeMs   float64  `json:"search_time_ms"`
	HighlightTerms []string `json:"highlight_terms"`
}
