package store

import (
	"context"

	"github.com/okazakilab/trackdash/internal/model"
)

// IssueFilter holds the coarse criteria the store applies in SQL before the
// in-memory engine takes over. It deliberately covers only what indexes can
// answer cheaply; free-text matching, filter trees, and priority sorting
// happen in the query package.
type IssueFilter struct {
	State    []model.State `json:"state,omitempty"`
	Author   string        `json:"author,omitempty"`
	Assignee string        `json:"assignee,omitempty"`
	Labels   []string      `json:"labels,omitempty"` // every label must be present
	Limit    int           `json:"limit,omitempty"`
	Offset   int           `json:"offset,omitempty"`
}

// Stats summarizes the stored issues for the dashboard's stat cards.
type Stats struct {
	Total  int            `json:"total"`
	Open   int            `json:"open"`
	Closed int            `json:"closed"`
	Labels map[string]int `json:"labels,omitempty"` // label name -> open issue count
}

// Store defines the persistence interface for issues.
type Store interface {
	CreateIssue(ctx context.Context, issue *model.Issue) error
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	ListIssues(ctx context.Context, filter IssueFilter) ([]*model.Issue, int, error) // returns issues, total count, error
	UpdateIssue(ctx context.Context, issue *model.Issue) error
	CloseIssue(ctx context.Context, id string) (*model.Issue, error)
	DeleteIssue(ctx context.Context, id string) error

	AddLabel(ctx context.Context, issueID string, label string) error
	RemoveLabel(ctx context.Context, issueID string, label string) error

	Stats(ctx context.Context) (*Stats, error)

	Close() error
}
