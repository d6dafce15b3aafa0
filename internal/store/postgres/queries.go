package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/okazakilab/trackdash/internal/model"
	"github.com/okazakilab/trackdash/internal/store"
)

// issueColumns is the column list used for SELECT statements on the issues table.
const issueColumns = `id, number, title, body, state, author, assignees, labels,
	created_at, updated_at, closed_at`

// CreateIssue inserts an issue; the ordinal number is assigned by the
// database and written back to the issue.
func (s *PostgresStore) CreateIssue(ctx context.Context, issue *model.Issue) error {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO issues (
			id, title, body, state, author, assignees, labels,
			created_at, updated_at, closed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING number`,
		issue.ID,
		issue.Title,
		issue.Body,
		string(issue.State),
		issue.User.Login,
		pq.Array(logins(issue.Assignees)),
		pq.Array(issue.LabelNames()),
		issue.CreatedAt,
		issue.UpdatedAt,
		nullTimePtr(issue.ClosedAt),
	)
	return row.Scan(&issue.Number)
}

// GetIssue fetches one issue by ID. A missing issue returns sql.ErrNoRows.
func (s *PostgresStore) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+issueColumns+` FROM issues WHERE id = $1`, id)
	return scanIssue(row)
}

// ListIssues fetches issues matching the coarse SQL filter, newest first,
// along with the total matching count (before limit/offset).
func (s *PostgresStore) ListIssues(ctx context.Context, filter store.IssueFilter) ([]*model.Issue, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.State) > 0 {
		placeholders := make([]string, len(filter.State))
		for i, st := range filter.State {
			placeholders[i] = nextArg()
			args = append(args, string(st))
		}
		whereClauses = append(whereClauses, "state IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Author != "" {
		whereClauses = append(whereClauses, "LOWER(author) = LOWER("+nextArg()+")")
		args = append(args, filter.Author)
	}

	if filter.Assignee != "" {
		whereClauses = append(whereClauses, nextArg()+" ILIKE ANY(assignees)")
		args = append(args, filter.Assignee)
	}

	if len(filter.Labels) > 0 {
		whereClauses = append(whereClauses, "labels @> "+nextArg())
		args = append(args, pq.Array(filter.Labels))
	}

	query := `SELECT COUNT(*) OVER() AS total_count, ` + issueColumns + ` FROM issues`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		issues []*model.Issue
		total  int
	)
	for rows.Next() {
		issue, t, err := scanIssueWithTotal(rows)
		if err != nil {
			return nil, 0, err
		}
		total = t
		issues = append(issues, issue)
	}
	return issues, total, rows.Err()
}

// UpdateIssue rewrites the mutable columns of an issue.
func (s *PostgresStore) UpdateIssue(ctx context.Context, issue *model.Issue) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE issues SET
			title = $2, body = $3, state = $4, assignees = $5, labels = $6,
			updated_at = $7, closed_at = $8
		WHERE id = $1`,
		issue.ID,
		issue.Title,
		issue.Body,
		string(issue.State),
		pq.Array(logins(issue.Assignees)),
		pq.Array(issue.LabelNames()),
		issue.UpdatedAt,
		nullTimePtr(issue.ClosedAt),
	)
	return err
}

// CloseIssue marks an issue closed and returns the updated row.
func (s *PostgresStore) CloseIssue(ctx context.Context, id string) (*model.Issue, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE issues
		SET state = 'closed', closed_at = NOW(), updated_at = NOW()
		WHERE id = $1
		RETURNING `+issueColumns,
		id,
	)
	return scanIssue(row)
}

// DeleteIssue removes an issue.
func (s *PostgresStore) DeleteIssue(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM issues WHERE id = $1`, id)
	return err
}

// AddLabel appends a label unless the issue already carries it.
func (s *PostgresStore) AddLabel(ctx context.Context, issueID string, label string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE issues
		SET labels = array_append(labels, $2), updated_at = NOW()
		WHERE id = $1 AND NOT labels @> ARRAY[$2]`,
		issueID, label,
	)
	return err
}

// RemoveLabel removes every occurrence of a label.
func (s *PostgresStore) RemoveLabel(ctx context.Context, issueID string, label string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE issues
		SET labels = array_remove(labels, $2), updated_at = NOW()
		WHERE id = $1`,
		issueID, label,
	)
	return err
}

// Stats aggregates counts for the dashboard's stat cards.
func (s *PostgresStore) Stats(ctx context.Context) (*store.Stats, error) {
	stats := &store.Stats{Labels: make(map[string]int)}

	rows, err := s.db.QueryContext(ctx, `SELECT state, COUNT(*) FROM issues GROUP BY state`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			state string
			count int
		)
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		stats.Total += count
		switch model.State(state) {
		case model.StateOpen:
			stats.Open = count
		case model.StateClosed:
			stats.Closed = count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	labelRows, err := s.db.QueryContext(ctx, `
		SELECT l, COUNT(*)
		FROM issues, UNNEST(labels) AS l
		WHERE state = 'open'
		GROUP BY l`)
	if err != nil {
		return nil, err
	}
	defer labelRows.Close()

	for labelRows.Next() {
		var (
			label string
			count int
		)
		if err := labelRows.Scan(&label, &count); err != nil {
			return nil, err
		}
		stats.Labels[label] = count
	}
	return stats, labelRows.Err()
}

func logins(users []model.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Login
	}
	return out
}
