package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Client is a typed HTTP client for the backend REST API. It attaches the
// bearer token to every request and maps non-2xx responses to *APIError.
// It does not retry and does not log; callers interpret status codes.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken sets the bearer token used for subsequent requests. An empty
// string clears it.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) request(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Any body shape is tolerated; a missing or malformed "error"
		// field produces the generic message.
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Error == "" {
			payload.Error = "Request failed"
		}
		return &APIError{Message: payload.Error, Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Signup creates an account and returns the token and account record.
func (c *Client) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.request(ctx, http.MethodPost, "/auth/signup", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and returns the token and account record.
func (c *Client) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var out AuthResult
	if err := c.request(ctx, http.MethodPost, "/auth/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me validates the current token and returns the account record.
func (c *Client) Me(ctx context.Context) (*AuthUser, error) {
	var out struct {
		User AuthUser `json:"user"`
	}
	if err := c.request(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// FakePayment selects a plan through the mocked payment endpoint and returns
// the updated account record.
func (c *Client) FakePayment(ctx context.Context, plan Plan) (*AuthUser, error) {
	var out struct {
		Message string   `json:"message"`
		User    AuthUser `json:"user"`
	}
	in := map[string]Plan{"plan": plan}
	if err := c.request(ctx, http.MethodPost, "/billing/fake-payment", in, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListLogs lists log entries for the given view partition.
func (c *Client) ListLogs(ctx context.Context, view LogView) ([]LogEntry, error) {
	var out struct {
		Logs []LogEntry `json:"logs"`
	}
	if err := c.request(ctx, http.MethodGet, "/logs?view="+string(view), nil, &out); err != nil {
		return nil, err
	}
	return out.Logs, nil
}

// CreateLog creates a log entry and returns the server-canonical record.
func (c *Client) CreateLog(ctx context.Context, in CreateLogInput) (*LogEntry, error) {
	var out struct {
		Log LogEntry `json:"log"`
	}
	if err := c.request(ctx, http.MethodPost, "/logs", in, &out); err != nil {
		return nil, err
	}
	return &out.Log, nil
}

// UpdateLog applies a partial update to a log entry.
func (c *Client) UpdateLog(ctx context.Context, id string, patch LogPatch) (*LogEntry, error) {
	var out struct {
		Log LogEntry `json:"log"`
	}
	if err := c.request(ctx, http.MethodPatch, "/logs/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out.Log, nil
}

// DeleteLog deletes a log entry.
func (c *Client) DeleteLog(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/logs/"+id, nil, nil)
}

// ListSessions lists sessions, newest first.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	var out struct {
		Sessions []Session `json:"sessions"`
	}
	if err := c.request(ctx, http.MethodGet, "/sessions", nil, &out); err != nil {
		return nil, err
	}
	return out.Sessions, nil
}

// CreateSession creates a session and any attached homework items in one call.
func (c *Client) CreateSession(ctx context.Context, in CreateSessionInput) (*Session, []HomeworkItem, error) {
	var out struct {
		Session       Session        `json:"session"`
		HomeworkItems []HomeworkItem `json:"homeworkItems"`
	}
	if err := c.request(ctx, http.MethodPost, "/sessions", in, &out); err != nil {
		return nil, nil, err
	}
	return &out.Session, out.HomeworkItems, nil
}

// UpdateSession applies a partial update to a session.
func (c *Client) UpdateSession(ctx context.Context, id string, patch SessionPatch) (*Session, error) {
	var out struct {
		Session Session `json:"session"`
	}
	if err := c.request(ctx, http.MethodPatch, "/sessions/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out.Session, nil
}

// ListHomework lists homework items.
func (c *Client) ListHomework(ctx context.Context) ([]HomeworkItem, error) {
	var out struct {
		Homework []HomeworkItem `json:"homework"`
	}
	if err := c.request(ctx, http.MethodGet, "/homework", nil, &out); err != nil {
		return nil, err
	}
	return out.Homework, nil
}

// CreateHomework creates a standalone homework item.
func (c *Client) CreateHomework(ctx context.Context, in CreateHomeworkInput) (*HomeworkItem, error) {
	var out struct {
		Homework HomeworkItem `json:"homework"`
	}
	if err := c.request(ctx, http.MethodPost, "/homework", in, &out); err != nil {
		return nil, err
	}
	return &out.Homework, nil
}

// UpdateHomework applies a partial update to a homework item.
func (c *Client) UpdateHomework(ctx context.Context, id string, patch HomeworkPatch) (*HomeworkItem, error) {
	var out struct {
		Homework HomeworkItem `json:"homework"`
	}
	if err := c.request(ctx, http.MethodPatch, "/homework/"+id, patch, &out); err != nil {
		return nil, err
	}
	return &out.Homework, nil
}

// DeleteHomework deletes a homework item.
func (c *Client) DeleteHomework(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/homework/"+id, nil, nil)
}

// GetProfile fetches the account settings record.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var out struct {
		Profile Profile `json:"profile"`
	}
	if err := c.request(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// UpdateProfile replaces the settings fields with the given record.
func (c *Client) UpdateProfile(ctx context.Context, p Profile) (*Profile, error) {
	var out struct {
		Profile Profile `json:"profile"`
	}
	if err := c.request(ctx, http.MethodPut, "/profile", p, &out); err != nil {
		return nil, err
	}
	return &out.Profile, nil
}

// DeleteAccount deletes the account and all its data.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.request(ctx, http.MethodDelete, "/account", nil, nil)
}
