package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/okazakilab/trackdash/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanIssue scans a single row into a model.Issue.
// The row must contain columns in the order defined by issueColumns.
func scanIssue(row scannable) (*model.Issue, error) {
	var (
		issue     model.Issue
		author    sql.NullString
		assignees pq.StringArray
		labels    pq.StringArray
		closedAt  sql.NullTime
	)

	err := row.Scan(
		&issue.ID,
		&issue.Number,
		&issue.Title,
		&issue.Body,
		&issue.State,
		&author,
		&assignees,
		&labels,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&closedAt,
	)
	if err != nil {
		return nil, err
	}

	issue.User = model.User{Login: author.String}
	for _, login := range assignees {
		issue.Assignees = append(issue.Assignees, model.User{Login: login})
	}
	// Label colors are an upstream presentation detail and are not persisted.
	for _, name := range labels {
		issue.Labels = append(issue.Labels, model.Label{Name: name})
	}
	if closedAt.Valid {
		t := closedAt.Time
		issue.ClosedAt = &t
	}

	return &issue, nil
}

// scanIssueWithTotal scans a row that has a leading total_count column
// followed by the standard issue columns. Used by ListIssues with
// COUNT(*) OVER().
func scanIssueWithTotal(rows *sql.Rows) (*model.Issue, int, error) {
	var (
		issue     model.Issue
		total     int
		author    sql.NullString
		assignees pq.StringArray
		labels    pq.StringArray
		closedAt  sql.NullTime
	)

	err := rows.Scan(
		&total,
		&issue.ID,
		&issue.Number,
		&issue.Title,
		&issue.Body,
		&issue.State,
		&author,
		&assignees,
		&labels,
		&issue.CreatedAt,
		&issue.UpdatedAt,
		&closedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	issue.User = model.User{Login: author.String}
	for _, login := range assignees {
		issue.Assignees = append(issue.Assignees, model.User{Login: login})
	}
	for _, name := range labels {
		issue.Labels = append(issue.Labels, model.Label{Name: name})
	}
	if closedAt.Valid {
		t := closedAt.Time
		issue.ClosedAt = &t
	}

	return &issue, total, nil
}

// nullTimePtr converts an optional time into a sql.NullTime for inserts.
func nullTimePtr(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
