package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/okazakilab/trackdash/internal/model"
	"github.com/okazakilab/trackdash/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return &PostgresStore{db: db}, mock
}

// issueRowColumns is the column list for scanIssue results.
var issueRowColumns = []string{
	"id", "number", "title", "body", "state", "author", "assignees", "labels",
	"created_at", "updated_at", "closed_at",
}

// issueWithTotalColumns is the column list for ListIssues results.
var issueWithTotalColumns = append([]string{"total_count"}, issueRowColumns...)

func TestCreateIssue(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`INSERT INTO issues`).
		WillReturnRows(sqlmock.NewRows([]string{"number"}).AddRow(42))

	issue := &model.Issue{
		ID:        "is-abc",
		Title:     "Bug in authentication",
		State:     model.StateOpen,
		User:      model.User{Login: "alice"},
		Labels:    []model.Label{{Name: "bug"}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.CreateIssue(context.Background(), issue); err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	if issue.Number != 42 {
		t.Errorf("Number = %d, want 42 (assigned by database)", issue.Number)
	}
}

func TestGetIssue(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(issueRowColumns).AddRow(
		"is-abc", 7, "Bug in authentication", "fix applied", "open",
		"alice", "{bob}", "{bug,\"priority: high\"}", now, now, nil,
	)
	mock.ExpectQuery(`SELECT .+ FROM issues WHERE id = \$1`).
		WithArgs("is-abc").
		WillReturnRows(rows)

	issue, err := s.GetIssue(context.Background(), "is-abc")
	if err != nil {
		t.Fatalf("GetIssue: %v", err)
	}
	if issue.Number != 7 || issue.User.Login != "alice" {
		t.Errorf("scanned issue = %+v", issue)
	}
	if len(issue.Assignees) != 1 || issue.Assignees[0].Login != "bob" {
		t.Errorf("assignees = %+v", issue.Assignees)
	}
	if len(issue.Labels) != 2 || issue.Labels[1].Name != "priority: high" {
		t.Errorf("labels = %+v", issue.Labels)
	}
	if issue.ClosedAt != nil {
		t.Errorf("ClosedAt = %v, want nil", issue.ClosedAt)
	}
}

func TestGetIssue_NotFound(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM issues WHERE id = \$1`).
		WithArgs("is-nope").
		WillReturnRows(sqlmock.NewRows(issueRowColumns))

	_, err := s.GetIssue(context.Background(), "is-nope")
	if err != sql.ErrNoRows {
		t.Errorf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestListIssues_Filters(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(issueWithTotalColumns).AddRow(
		5, "is-1", 1, "Bug", "", "open", "alice", "{}", "{bug}", now, now, nil,
	)
	mock.ExpectQuery(`SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM issues WHERE state IN \(\$1\) AND LOWER\(author\) = LOWER\(\$2\) ORDER BY created_at DESC LIMIT \$3`).
		WithArgs("open", "alice", 10).
		WillReturnRows(rows)

	issues, total, err := s.ListIssues(context.Background(), store.IssueFilter{
		State:  []model.State{model.StateOpen},
		Author: "alice",
		Limit:  10,
	})
	if err != nil {
		t.Fatalf("ListIssues: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(issues) != 1 || issues[0].ID != "is-1" {
		t.Errorf("issues = %+v", issues)
	}
}

func TestListIssues_Empty(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) OVER\(\) AS total_count, .+ FROM issues ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows(issueWithTotalColumns))

	issues, total, err := s.ListIssues(context.Background(), store.IssueFilter{})
	if err != nil {
		t.Fatalf("ListIssues: %v", err)
	}
	if total != 0 || len(issues) != 0 {
		t.Errorf("got %d issues, total %d, want none", len(issues), total)
	}
}

func TestUpdateIssue(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectExec(`UPDATE issues SET\s+title = \$2`).
		WithArgs("is-1", "Fix login timeout", "session expires too early", "open",
			`{"bob"}`, `{"bug","priority: critical"}`, now, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	issue := &model.Issue{
		ID:        "is-1",
		Title:     "Fix login timeout",
		Body:      "session expires too early",
		State:     model.StateOpen,
		Assignees: []model.User{{Login: "bob"}},
		Labels:    []model.Label{{Name: "bug"}, {Name: "priority: critical"}},
		UpdatedAt: now,
	}
	if err := s.UpdateIssue(context.Background(), issue); err != nil {
		t.Fatalf("UpdateIssue: %v", err)
	}
}

func TestCloseIssue(t *testing.T) {
	s, mock := newMockDB(t)
	now := time.Now()

	rows := sqlmock.NewRows(issueRowColumns).AddRow(
		"is-1", 1, "Bug", "", "closed", "alice", "{}", "{}", now, now, now,
	)
	mock.ExpectQuery(`UPDATE issues\s+SET state = 'closed'`).
		WithArgs("is-1").
		WillReturnRows(rows)

	issue, err := s.CloseIssue(context.Background(), "is-1")
	if err != nil {
		t.Fatalf("CloseIssue: %v", err)
	}
	if issue.State != model.StateClosed || issue.ClosedAt == nil {
		t.Errorf("closed issue = %+v", issue)
	}
}

func TestAddLabel(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE issues\s+SET labels = array_append`).
		WithArgs("is-1", "bug").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.AddLabel(context.Background(), "is-1", "bug"); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
}

func TestRemoveLabel(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE issues\s+SET labels = array_remove`).
		WithArgs("is-1", "bug").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.RemoveLabel(context.Background(), "is-1", "bug"); err != nil {
		t.Fatalf("RemoveLabel: %v", err)
	}
}

func TestDeleteIssue(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM issues WHERE id = \$1`).
		WithArgs("is-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.DeleteIssue(context.Background(), "is-1"); err != nil {
		t.Fatalf("DeleteIssue: %v", err)
	}
}

func TestStats(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT state, COUNT\(\*\) FROM issues GROUP BY state`).
		WillReturnRows(sqlmock.NewRows([]string{"state", "count"}).
			AddRow("open", 3).
			AddRow("closed", 2))
	mock.ExpectQuery(`SELECT l, COUNT\(\*\)`).
		WillReturnRows(sqlmock.NewRows([]string{"l", "count"}).
			AddRow("bug", 2).
			AddRow("priority: high", 1))

	stats, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 5 || stats.Open != 3 || stats.Closed != 2 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Labels["bug"] != 2 || stats.Labels["priority: high"] != 1 {
		t.Errorf("label stats = %+v", stats.Labels)
	}
}

func TestNullTimePtr(t *testing.T) {
	if nullTimePtr(nil).Valid {
		t.Error("nullTimePtr(nil) should be invalid")
	}
	now := time.Now()
	if nt := nullTimePtr(&now); !nt.Valid || !nt.Time.Equal(now) {
		t.Errorf("nullTimePtr(now) = %v", nt)
	}
}
