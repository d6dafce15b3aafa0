// Package client provides a transport-agnostic interface for the trackdash
// service and an HTTP/JSON implementation that talks to the trackdash REST API.
package client

import (
	"context"

	"github.com/okazakilab/trackdash/internal/model"
)

// DashClient is the interface that all trackdash CLI commands use to
// communicate with the trackdash server. It is implemented by HTTPClient
// (default) and can be backed by any transport.
type DashClient interface {
	// Issue CRUD
	CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error)
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	ListIssues(ctx context.Context, req *ListIssuesRequest) (*ListIssuesResponse, error)
	UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error)
	CloseIssue(ctx context.Context, id string) (*model.Issue, error)
	DeleteIssue(ctx context.Context, id string) error

	// Labels
	AddLabel(ctx context.Context, issueID, label string) error
	RemoveLabel(ctx context.Context, issueID, label string) error

	// Search
	Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResult, error)

	// Stats
	Stats(ctx context.Context) (*StatsResponse, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateIssueRequest holds parameters for creating an issue.
type CreateIssueRequest struct {
	Title     string   `json:"title"`
	Body      string   `json:"body,omitempty"`
	Author    string   `json:"author,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
	Labels    []string `json:"labels,omitempty"`
}

// UpdateIssueRequest holds parameters for a partial issue update. Nil
// fields are left unchanged on the server.
type UpdateIssueRequest struct {
	Title     *string   `json:"title,omitempty"`
	Body      *string   `json:"body,omitempty"`
	Assignees *[]string `json:"assignees,omitempty"`
	Labels    *[]string `json:"labels,omitempty"`
}

// ListIssuesRequest holds parameters for listing issues.
type ListIssuesRequest struct {
	State    []string `json:"state,omitempty"`
	Author   string   `json:"author,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// ListIssuesResponse is the response from ListIssues.
type ListIssuesResponse struct {
	Issues []*model.Issue `json:"issues"`
	Total  int            `json:"total"`
}

// StatsResponse mirrors the dashboard stat cards.
type StatsResponse struct {
	Total  int            `json:"total"`
	Open   int            `json:"open"`
	Closed int            `json:"closed"`
	Labels map[string]int `json:"labels"`
}
