// Package finalize implements the shared end-of-session path: stop the
// engine, durably enqueue the resulting time entry, reset the timer, then
// deliver the entry to the persistence API. The engine resets as soon as the
// entry is queued locally, so an upload failure never loses recorded time.
package finalize

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/outbox"
)

// Engine is the subset of the timer engine the finalizer needs.
type Engine interface {
	Session() domain.TimerSession
	Stop() (domain.StopResult, error)
	Reset()
}

// EntriesClient talks to the remote persistence API.
type EntriesClient interface {
	CreateTimeEntry(ctx context.Context, entry domain.TimeEntry) (string, error)
	RecomputeTaskActualHours(ctx context.Context, taskID string) error
}

// Queue is the durable pending-entry store.
type Queue interface {
	Enqueue(entry domain.TimeEntry) (int64, error)
	Ack(id int64) error
	MarkFailed(id int64, cause error) error
	Pending() ([]outbox.PendingEntry, error)
}

// Workspace identifies the tenant stamped onto every entry.
type Workspace struct {
	OrganizationID string
	UserID         string
}

// Service finalizes sessions and flushes the pending queue.
type Service struct {
	engine    Engine
	queue     Queue
	api       EntriesClient // nil when the persistence API is not configured
	workspace Workspace
	logger    *slog.Logger
}

// NewService creates a finalizer. api may be nil; entries then stay queued
// until a configured client flushes them.
func NewService(engine Engine, queue Queue, api EntriesClient, workspace Workspace, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		queue:     queue,
		api:       api,
		workspace: workspace,
		logger:    logger,
	}
}

// Result reports what finalization produced. SaveErr is non-nil when the
// entry could not be delivered remotely; it is already queued locally and a
// later flush will retry, so callers surface it as a warning, not a failure.
type Result struct {
	Kind            domain.SessionKind
	Task            domain.TaskRef
	DurationSeconds uint32
	SaveErr         error
}

// Finalize ends the current session: stop, enqueue, reset, upload.
func (s *Service) Finalize(ctx context.Context) (Result, error) {
	session := s.engine.Session()

	stop, err := s.engine.Stop()
	if err != nil {
		return Result{}, err
	}

	entry := domain.TimeEntry{
		OrganizationID:  s.workspace.OrganizationID,
		UserID:          s.workspace.UserID,
		TaskID:          session.Task.TaskID,
		ProjectID:       session.Task.ProjectID,
		Kind:            session.Kind,
		StartTime:       stop.StartTime,
		EndTime:         stop.EndTime,
		DurationSeconds: stop.DurationSeconds,
		Description:     session.Description,
		Billable:        session.Billable,
	}

	id, err := s.queue.Enqueue(entry)
	if err != nil {
		// Without a durable copy the session must stay intact so the user
		// can retry instead of losing the interval.
		return Result{}, err
	}

	s.engine.Reset()

	result := Result{
		Kind:            session.Kind,
		Task:            session.Task,
		DurationSeconds: stop.DurationSeconds,
	}
	result.SaveErr = s.deliver(ctx, id, entry)
	return result, nil
}

// Flush attempts to deliver every queued entry, oldest first. It returns the
// number delivered and the first delivery error encountered, after trying
// all rows.
func (s *Service) Flush(ctx context.Context) (int, error) {
	pending, err := s.queue.Pending()
	if err != nil {
		return 0, err
	}

	delivered := 0
	var firstErr error
	for _, p := range pending {
		if err := s.deliver(ctx, p.ID, p.Entry); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivered++
	}
	return delivered, firstErr
}

// PendingCount returns how many entries still await delivery.
func (s *Service) PendingCount() (int, error) {
	pending, err := s.queue.Pending()
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

func (s *Service) deliver(ctx context.Context, id int64, entry domain.TimeEntry) error {
	if s.api == nil {
		s.logger.Warn("persistence API not configured, entry left pending", "queue_id", id)
		return &domain.APIError{Op: "create_entry", Err: ErrNotConfigured}
	}

	recordID, err := s.api.CreateTimeEntry(ctx, entry)
	if err != nil {
		s.logger.Warn("time entry upload failed", "queue_id", id, "error", err)
		if markErr := s.queue.MarkFailed(id, err); markErr != nil {
			s.logger.Warn("failed to record delivery failure", "queue_id", id, "error", markErr)
		}
		return err
	}

	if err := s.queue.Ack(id); err != nil {
		// The remote row exists; an un-acked local row means a duplicate on
		// the next flush, which the backend deduplicates by start time.
		s.logger.Warn("failed to ack delivered entry", "queue_id", id, "error", err)
	}

	if entry.TaskID != "" {
		if err := s.api.RecomputeTaskActualHours(ctx, entry.TaskID); err != nil {
			// Aggregate refresh is best-effort; the entry itself is safe.
			s.logger.Warn("failed to recompute task hours", "task_id", entry.TaskID, "error", err)
		}
	}

	s.logger.Info("time entry delivered",
		"record_id", recordID,
		"kind", entry.Kind,
		"duration_seconds", entry.DurationSeconds)
	return nil
}

// ErrNotConfigured reports that no persistence API endpoint is set; entries
// accumulate in the outbox until one is.
var ErrNotConfigured = errors.New("persistence API not configured")
