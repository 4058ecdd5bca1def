package entries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/ederavila/focal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient mocks HTTP requests
type mockHTTPClient struct {
	lastRequest *http.Request
	lastBody    []byte
	response    *http.Response
	err         error
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.lastRequest = req
	if req.Body != nil {
		m.lastBody, _ = io.ReadAll(req.Body)
	}
	return m.response, m.err
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		Header:     make(http.Header),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testEntry() domain.TimeEntry {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	return domain.TimeEntry{
		OrganizationID:  "org-1",
		UserID:          "user-7",
		TaskID:          "task-3",
		ProjectID:       "proj-2",
		Kind:            domain.KindFocus,
		StartTime:       start,
		EndTime:         start.Add(1500 * time.Second),
		DurationSeconds: 1500,
		Description:     "spec review",
		Billable:        true,
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(&mockHTTPClient{}, testLogger(), "", "", 0)
	assert.Error(t, err)
}

func TestCreateTimeEntry(t *testing.T) {
	mock := &mockHTTPClient{response: jsonResponse(201, `{"id":"rec-42"}`)}
	client, err := NewClient(mock, testLogger(), "https://api.example.com/", "tok", 5*time.Second)
	require.NoError(t, err)

	id, err := client.CreateTimeEntry(context.Background(), testEntry())
	require.NoError(t, err)
	assert.Equal(t, "rec-42", id)

	require.NotNil(t, mock.lastRequest)
	assert.Equal(t, "https://api.example.com/v1/time-entries", mock.lastRequest.URL.String())
	assert.Equal(t, "Bearer tok", mock.lastRequest.Header.Get("Authorization"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(mock.lastBody, &sent))
	assert.Equal(t, "org-1", sent["organization_id"])
	assert.Equal(t, "focus_cycle", sent["kind"])
	assert.Equal(t, float64(1500), sent["duration_seconds"])
	assert.Equal(t, "2025-06-02T09:00:00Z", sent["start_time"])
	assert.Equal(t, "2025-06-02T09:25:00Z", sent["end_time"])
	assert.Equal(t, true, sent["billable"])
}

func TestCreateTimeEntry_ServerError(t *testing.T) {
	mock := &mockHTTPClient{response: jsonResponse(503, `backend down`)}
	client, err := NewClient(mock, testLogger(), "https://api.example.com", "", 0)
	require.NoError(t, err)

	_, err = client.CreateTimeEntry(context.Background(), testEntry())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "create_entry", apiErr.Op)
	assert.Equal(t, 503, apiErr.StatusCode)
}

func TestCreateTimeEntry_TransportError(t *testing.T) {
	mock := &mockHTTPClient{err: errors.New("connection refused")}
	client, err := NewClient(mock, testLogger(), "https://api.example.com", "", 0)
	require.NoError(t, err)

	_, err = client.CreateTimeEntry(context.Background(), testEntry())
	require.Error(t, err)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.StatusCode)
}

func TestRecomputeTaskActualHours(t *testing.T) {
	mock := &mockHTTPClient{response: jsonResponse(204, "")}
	client, err := NewClient(mock, testLogger(), "https://api.example.com", "", 0)
	require.NoError(t, err)

	require.NoError(t, client.RecomputeTaskActualHours(context.Background(), "task-3"))
	assert.Equal(t, "https://api.example.com/v1/tasks/task-3/recompute-hours", mock.lastRequest.URL.String())
}

func TestRecomputeTaskActualHours_Error(t *testing.T) {
	mock := &mockHTTPClient{response: jsonResponse(404, `unknown task`)}
	client, err := NewClient(mock, testLogger(), "https://api.example.com", "", 0)
	require.NoError(t, err)

	err = client.RecomputeTaskActualHours(context.Background(), "task-x")
	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "recompute_hours", apiErr.Op)
	assert.Equal(t, 404, apiErr.StatusCode)
}
