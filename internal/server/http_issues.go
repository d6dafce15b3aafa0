package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okazakilab/trackdash/internal/events"
	"github.com/okazakilab/trackdash/internal/idgen"
	"github.com/okazakilab/trackdash/internal/model"
	"github.com/okazakilab/trackdash/internal/store"
)

// createIssueInput is the request body for POST /v1/issues.
type createIssueInput struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Author    string   `json:"author"`
	Assignees []string `json:"assignees"`
	Labels    []string `json:"labels"`
}

// handleCreateIssue handles POST /v1/issues.
func (s *DashServer) handleCreateIssue(w http.ResponseWriter, r *http.Request) {
	var in createIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.createIssue(r.Context(), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, issue)
}

func (s *DashServer) createIssue(ctx context.Context, in createIssueInput) (*model.Issue, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, inputError("title is required")
	}

	id, err := idgen.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	issue := &model.Issue{
		ID:        id,
		Title:     in.Title,
		Body:      in.Body,
		State:     model.StateOpen,
		User:      model.User{Login: in.Author},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, login := range in.Assignees {
		issue.Assignees = append(issue.Assignees, model.User{Login: login})
	}
	for _, name := range in.Labels {
		issue.Labels = append(issue.Labels, model.Label{Name: name})
	}

	if err := s.store.CreateIssue(ctx, issue); err != nil {
		return nil, err
	}

	s.publish(ctx, events.TopicIssueCreated, events.IssueCreated{Issue: issue})
	return issue, nil
}

// handleListIssues handles GET /v1/issues.
func (s *DashServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.IssueFilter{
		Author:   q.Get("author"),
		Assignee: q.Get("assignee"),
	}

	if v := q.Get("state"); v != "" {
		for _, st := range strings.Split(v, ",") {
			filter.State = append(filter.State, model.State(st))
		}
	}
	if v := q.Get("labels"); v != "" {
		filter.Labels = strings.Split(v, ",")
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	issues, total, err := s.store.ListIssues(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list issues")
		return
	}

	// Ensure issues is never null in JSON output.
	if issues == nil {
		issues = []*model.Issue{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"issues": issues,
		"total":  total,
	})
}

// handleGetIssue handles GET /v1/issues/{id}.
func (s *DashServer) handleGetIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	issue, err := s.store.GetIssue(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}

	writeJSON(w, http.StatusOK, issue)
}

// updateIssueInput is the request body for PATCH /v1/issues/{id}.
// Only fields present in the JSON are applied.
type updateIssueInput struct {
	Title     *string   `json:"title"`
	Body      *string   `json:"body"`
	Assignees *[]string `json:"assignees"`
	Labels    *[]string `json:"labels"`
}

// handleUpdateIssue handles PATCH /v1/issues/{id}.
func (s *DashServer) handleUpdateIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateIssueInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	issue, err := s.store.GetIssue(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get issue")
		return
	}

	changes := map[string]any{}
	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		issue.Title = *in.Title
		changes["title"] = *in.Title
	}
	if in.Body != nil {
		issue.Body = *in.Body
		changes["body"] = *in.Body
	}
	if in.Assignees != nil {
		issue.Assignees = nil
		for _, login := range *in.Assignees {
			issue.Assignees = append(issue.Assignees, model.User{Login: login})
		}
		changes["assignees"] = *in.Assignees
	}
	if in.Labels != nil {
		issue.Labels = nil
		for _, name := range *in.Labels {
			issue.Labels = append(issue.Labels, model.Label{Name: name})
		}
		changes["labels"] = *in.Labels
	}
	if len(changes) == 0 {
		writeError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	issue.UpdatedAt = time.Now().UTC()
	if err := s.store.UpdateIssue(r.Context(), issue); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueUpdated, events.IssueUpdated{Issue: issue, Changes: changes})

	writeJSON(w, http.StatusOK, issue)
}

// handleCloseIssue handles POST /v1/issues/{id}/close.
func (s *DashServer) handleCloseIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	issue, err := s.store.CloseIssue(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "issue not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to close issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueClosed, events.IssueClosed{Issue: issue})

	writeJSON(w, http.StatusOK, issue)
}

// handleDeleteIssue handles DELETE /v1/issues/{id}.
func (s *DashServer) handleDeleteIssue(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteIssue(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "issue not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete issue")
		return
	}

	s.publish(r.Context(), events.TopicIssueDeleted, events.IssueDeleted{IssueID: id})

	w.WriteHeader(http.StatusNoContent)
}

// handleAddLabel handles POST /v1/issues/{id}/labels.
func (s *DashServer) handleAddLabel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Label == "" {
		writeError(w, http.StatusBadRequest, "label is required")
		return
	}

	if err := s.store.AddLabel(r.Context(), id, in.Label); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to add label")
		return
	}

	s.publish(r.Context(), events.TopicLabelAdded, events.LabelAdded{IssueID: id, Label: in.Label})

	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveLabel handles DELETE /v1/issues/{id}/labels/{label}.
func (s *DashServer) handleRemoveLabel(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	label := r.PathValue("label")
	if id == "" || label == "" {
		writeError(w, http.StatusBadRequest, "id and label are required")
		return
	}

	if err := s.store.RemoveLabel(r.Context(), id, label); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to remove label")
		return
	}

	s.publish(r.Context(), events.TopicLabelRemoved, events.LabelRemoved{IssueID: id, Label: label})

	w.WriteHeader(http.StatusNoContent)
}

// handleGetStats handles GET /v1/stats.
func (s *DashServer) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
