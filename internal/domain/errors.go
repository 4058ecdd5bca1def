package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNoActiveSession is returned by a stop with nothing running. Callers
	// are expected to gate the stop action on the running flag, so hitting
	// this is a programming error, not a user-facing condition.
	ErrNoActiveSession = errors.New("no active session")

	// ErrTimerConflict is returned when starting a session kind while a
	// different kind is already running. Surfaced to the user as-is.
	ErrTimerConflict = errors.New("a timer is already running, stop it first")
)

// APIError represents a failure talking to the remote persistence API
type APIError struct {
	Op         string // Operation: "create_entry", "recompute_hours"
	StatusCode int    // HTTP status, 0 when the request never completed
	Err        error  // Underlying error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("api %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// OutboxError represents a failure in the local pending-entry queue
type OutboxError struct {
	Op  string
	Err error
}

func (e *OutboxError) Error() string {
	return fmt.Sprintf("outbox %s: %v", e.Op, e.Err)
}

func (e *OutboxError) Unwrap() error {
	return e.Err
}

// SnapshotError represents a failure reading or writing the durable session
// snapshot. Read-side corruption is not an error (the engine falls back to
// the zero state); this covers I/O failures on the write side.
type SnapshotError struct {
	Op  string
	Err error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s: %v", e.Op, e.Err)
}

func (e *SnapshotError) Unwrap() error {
	return e.Err
}
