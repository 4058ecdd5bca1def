// Package entries is the client for the remote persistence API: creating
// immutable time-entry records and requesting aggregate recomputation.
package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ederavila/focal/internal/domain"
)

// HTTPClient abstracts HTTP requests for testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the persistence API on behalf of one workspace user.
type Client struct {
	httpClient HTTPClient
	logger     *slog.Logger
	baseURL    string
	token      string
	timeout    time.Duration
}

// NewClient creates a persistence API client. timeout bounds each call so a
// hung backend cannot leave the UI saving forever.
func NewClient(httpClient HTTPClient, logger *slog.Logger, baseURL, token string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("persistence API base URL not configured")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		timeout:    timeout,
	}, nil
}

type createEntryRequest struct {
	OrganizationID  string `json:"organization_id"`
	UserID          string `json:"user_id"`
	TaskID          string `json:"task_id,omitempty"`
	ProjectID       string `json:"project_id,omitempty"`
	Kind            string `json:"kind"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationSeconds uint32 `json:"duration_seconds"`
	Description     string `json:"description,omitempty"`
	Billable        bool   `json:"billable"`
}

type createEntryResponse struct {
	ID string `json:"id"`
}

// CreateTimeEntry inserts a time-entry record and returns its record ID.
func (c *Client) CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (string, error) {
	c.logger.Debug("creating time entry",
		"kind", entry.Kind,
		"duration_seconds", entry.DurationSeconds,
		"task_id", entry.TaskID)

	reqBody := createEntryRequest{
		OrganizationID:  entry.OrganizationID,
		UserID:          entry.UserID,
		TaskID:          entry.TaskID,
		ProjectID:       entry.ProjectID,
		Kind:            string(entry.Kind),
		StartTime:       entry.StartTime.UTC().Format(time.RFC3339),
		EndTime:         entry.EndTime.UTC().Format(time.RFC3339),
		DurationSeconds: entry.DurationSeconds,
		Description:     entry.Description,
		Billable:        entry.Billable,
	}

	var resp createEntryResponse
	if err := c.post(ctx, "/v1/time-entries", reqBody, &resp); err != nil {
		return "", &domain.APIError{Op: "create_entry", StatusCode: statusOf(err), Err: err}
	}

	c.logger.Info("time entry created", "record_id", resp.ID, "kind", entry.Kind)
	return resp.ID, nil
}

// RecomputeTaskActualHours asks the backend to refresh the actual-hours
// aggregate of a task after a new entry was booked against it.
func (c *Client) RecomputeTaskActualHours(ctx context.Context, taskID string) error {
	c.logger.Debug("recomputing task hours", "task_id", taskID)

	body := map[string]string{"task_id": taskID}
	if err := c.post(ctx, "/v1/tasks/"+taskID+"/recompute-hours", body, nil); err != nil {
		return &domain.APIError{Op: "recompute_hours", StatusCode: statusOf(err), Err: err}
	}
	return nil
}

// statusError carries the HTTP status through the generic post helper.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.code, e.body)
}

func statusOf(err error) int {
	var se *statusError
	if errors.As(err, &se) {
		return se.code
	}
	return 0
}

func (c *Client) post(ctx context.Context, path string, reqBody, respBody any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(bodyBytes))}
	}

	if respBody == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
