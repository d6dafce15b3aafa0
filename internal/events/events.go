package events

import (
	"context"

	"github.com/okazakilab/trackdash/internal/model"
)

// Event topic constants
const (
	TopicIssueCreated = "trackdash.issue.created"
	TopicIssueUpdated = "trackdash.issue.updated"
	TopicIssueClosed  = "trackdash.issue.closed"
	TopicIssueDeleted = "trackdash.issue.deleted"
	TopicLabelAdded   = "trackdash.label.added"
	TopicLabelRemoved = "trackdash.label.removed"

	// Activity events consumed by the dashboard's stat feeds.
	TopicSearchPerformed = "trackdash.search.performed"
)

// Event types

type IssueCreated struct {
	Issue *model.Issue `json:"issue"`
}

type IssueUpdated struct {
	Issue   *model.Issue   `json:"issue"`
	Changes map[string]any `json:"changes"` // field name -> new value
}

type IssueClosed struct {
	Issue *model.Issue `json:"issue"`
}

type IssueDeleted struct {
	IssueID string `json:"issue_id"`
}

type LabelAdded struct {
	IssueID string `json:"issue_id"`
	Label   string `json:"label"`
}

type LabelRemoved struct {
	IssueID string `json:"issue_id"`
	Label   string `json:"label"`
}

// SearchPerformed records one pipeline invocation: the query, how many
// records survived, and how long the engine took.
type SearchPerformed struct {
	Query         string  `json:"query"`
	TotalCount    int     `json:"total_count"`
	MatchingCount int     `json:"matching_count"`
	SearchTimeMs  float64 `json:"search_time_ms"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
