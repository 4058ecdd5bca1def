package domain

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{
			name: "with status code",
			err:  APIError{Op: "create_entry", StatusCode: 503, Err: errors.New("service unavailable")},
			want: "api create_entry: status 503: service unavailable",
		},
		{
			name: "request never completed",
			err:  APIError{Op: "recompute_hours", Err: errors.New("connection refused")},
			want: "api recompute_hours: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &APIError{Op: "create_entry", Err: underlying}

	if !errors.Is(err, underlying) {
		t.Errorf("errors.Is() did not match underlying error")
	}
}

func TestOutboxError_Error(t *testing.T) {
	err := &OutboxError{Op: "enqueue", Err: errors.New("database is locked")}
	want := "outbox enqueue: database is locked"
	if got := err.Error(); got != want {
		t.Errorf("OutboxError.Error() = %v, want %v", got, want)
	}
}

func TestSnapshotError_Error(t *testing.T) {
	err := &SnapshotError{Op: "write", Err: errors.New("disk full")}
	want := "snapshot write: disk full"
	if got := err.Error(); got != want {
		t.Errorf("SnapshotError.Error() = %v, want %v", got, want)
	}
}
