package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/okazakilab/trackdash/internal/model"
)

// HTTPClient implements DashClient using the trackdash HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Issue CRUD ---

func (c *HTTPClient) CreateIssue(ctx context.Context, req *CreateIssueRequest) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodPost, "/v1/issues", req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodGet, "/v1/issues/"+url.PathEscape(id), nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) ListIssues(ctx context.Context, req *ListIssuesRequest) (*ListIssuesResponse, error) {
	q := url.Values{}
	if len(req.State) > 0 {
		q.Set("state", strings.Join(req.State, ","))
	}
	if req.Author != "" {
		q.Set("author", req.Author)
	}
	if req.Assignee != "" {
		q.Set("assignee", req.Assignee)
	}
	if len(req.Labels) > 0 {
		q.Set("labels", strings.Join(req.Labels, ","))
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/issues"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListIssuesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateIssue(ctx context.Context, id string, req *UpdateIssueRequest) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/issues/"+url.PathEscape(id), req, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) CloseIssue(ctx context.Context, id string) (*model.Issue, error) {
	var issue model.Issue
	if err := c.doJSON(ctx, http.MethodPost, "/v1/issues/"+url.PathEscape(id)+"/close", nil, &issue); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (c *HTTPClient) DeleteIssue(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/issues/"+url.PathEscape(id), nil, nil)
}

// --- Labels ---

func (c *HTTPClient) AddLabel(ctx context.Context, issueID, label string) error {
	body := map[string]string{"label": label}
	return c.doJSON(ctx, http.MethodPost, "/v1/issues/"+url.PathEscape(issueID)+"/labels", body, nil)
}

func (c *HTTPClient) RemoveLabel(ctx context.Context, issueID, label string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/issues/"+url.PathEscape(issueID)+"/labels/"+url.PathEscape(label), nil, nil)
}

// --- Search ---

func (c *HTTPClient) Search(ctx context.Context, req *model.SearchRequest) (*model.SearchResult, error) {
	var result model.SearchResult
	if err := c.doJSON(ctx, http.MethodPost, "/v1/search", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Stats ---

func (c *HTTPClient) Stats(ctx context.Context) (*StatsResponse, error) {
	var resp StatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content, success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
