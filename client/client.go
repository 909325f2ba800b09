// Package client is a minimal typed client for the TodoX REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is a non-2xx response decoded into its message body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client talks to a TodoX server. It is safe for sequential use; the bearer
// token is plain mutable state, matching the single-user nature of the API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New builds a client for the API root, e.g. "http://localhost:5001".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls. Register
// and Login do this automatically.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Message: apiErr.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Register creates an account and stores the returned token on the client.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp, nil
}

func (c *Client) Profile(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/categories", input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id uint, input CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, "/categories/"+itoa(id), input, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a category and returns the removed record. The call
// fails with a 400 while any task still references the category.
func (c *Client) DeleteCategory(ctx context.Context, id uint) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodDelete, "/categories/"+itoa(id), nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// Tasks lists tasks for a date bucket ("all", "today", "week", "month") and a
// category selector ("", "all", "none" or a category id rendered as decimal).
func (c *Client) Tasks(ctx context.Context, filter, category string) (*TaskList, error) {
	q := url.Values{}
	if filter != "" {
		q.Set("filter", filter)
	}
	if category != "" {
		q.Set("category", category)
	}
	path := "/tasks"
	if encoded := q.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var list TaskList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask sends a partial update: only the keys present in fields change.
// A nil value clears the corresponding field.
func (c *Client) UpdateTask(ctx context.Context, id uint, fields map[string]interface{}) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+itoa(id), fields, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id uint) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+itoa(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) BulkDeleteTasks(ctx context.Context, taskIDs []uint) (int64, error) {
	var resp struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	err := c.do(ctx, http.MethodPost, "/tasks/bulk-delete", map[string]interface{}{
		"taskIds": taskIDs,
	}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.DeletedCount, nil
}

// BulkUpdateTasks sets status and/or completedAt on every owned task in the
// list. Nil skips a field; completedAt may be explicitly cleared by including
// it with a nil time when reverting tasks to active.
func (c *Client) BulkUpdateTasks(ctx context.Context, taskIDs []uint, status *string, completedAt *time.Time, setCompletedAt bool) (int64, error) {
	body := map[string]interface{}{"taskIds": taskIDs}
	if status != nil {
		body["status"] = *status
	}
	if setCompletedAt {
		body["completedAt"] = completedAt
	}

	var resp struct {
		ModifiedCount int64 `json:"modifiedCount"`
	}
	if err := c.do(ctx, http.MethodPost, "/tasks/bulk-update", body, &resp); err != nil {
		return 0, err
	}
	return resp.ModifiedCount, nil
}

// DueSoon returns active tasks due within the next 24 hours.
func (c *Client) DueSoon(ctx context.Context) ([]Task, error) {
	var resp struct {
		Tasks []Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, "/tasks/due-soon", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) Templates(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := c.do(ctx, http.MethodGet, "/templates", nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (c *Client) CreateTemplate(ctx context.Context, input TemplateInput) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodPost, "/templates", input, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (c *Client) UpdateTemplate(ctx context.Context, id uint, fields map[string]interface{}) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodPut, "/templates/"+itoa(id), fields, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func (c *Client) DeleteTemplate(ctx context.Context, id uint) (*Template, error) {
	var template Template
	if err := c.do(ctx, http.MethodDelete, "/templates/"+itoa(id), nil, &template); err != nil {
		return nil, err
	}
	return &template, nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
