// Package outbox holds finalized time entries in a local sqlite queue until
// the persistence API acknowledges them. A session may be reset the moment
// its entry is enqueued: a failed or interrupted upload leaves the row
// pending, so the recorded interval is never lost to a network error.
package outbox

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ederavila/focal/internal/domain"
)

// Outbox is the pending-entry queue.
type Outbox struct {
	db     *sql.DB
	logger *slog.Logger
}

// PendingEntry is a queued time entry with its delivery bookkeeping.
type PendingEntry struct {
	ID        int64
	Entry     domain.TimeEntry
	Attempts  int
	LastError string
	CreatedAt time.Time
}

// Open opens (creating if needed) the outbox database at path and applies
// pending migrations.
func Open(path string, logger *slog.Logger) (*Outbox, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &domain.OutboxError{Op: "open", Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &domain.OutboxError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &domain.OutboxError{Op: "open", Err: err}
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Outbox{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (o *Outbox) Close() error {
	return o.db.Close()
}

// Enqueue inserts a finalized entry and returns its queue ID. Called before
// the remote create, so the interval is durable from the moment the session
// is finalized.
func (o *Outbox) Enqueue(entry domain.TimeEntry) (int64, error) {
	result, err := o.db.Exec(`
		INSERT INTO pending_entries (
			organization_id, user_id, task_id, project_id, kind,
			start_time, end_time, duration_seconds, description, billable,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.OrganizationID, entry.UserID, entry.TaskID, entry.ProjectID,
		string(entry.Kind), entry.StartTime.UTC(), entry.EndTime.UTC(),
		entry.DurationSeconds, entry.Description, entry.Billable,
		time.Now().UTC(),
	)
	if err != nil {
		return 0, &domain.OutboxError{Op: "enqueue", Err: err}
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, &domain.OutboxError{Op: "enqueue", Err: err}
	}

	o.logger.Debug("entry enqueued", "queue_id", id, "kind", entry.Kind)
	return id, nil
}

// Ack removes an entry after the persistence API confirmed the create.
func (o *Outbox) Ack(id int64) error {
	if _, err := o.db.Exec("DELETE FROM pending_entries WHERE id = ?", id); err != nil {
		return &domain.OutboxError{Op: "ack", Err: err}
	}
	o.logger.Debug("entry acknowledged", "queue_id", id)
	return nil
}

// MarkFailed records a delivery failure against a queued entry.
func (o *Outbox) MarkFailed(id int64, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := o.db.Exec(
		"UPDATE pending_entries SET attempts = attempts + 1, last_error = ? WHERE id = ?",
		msg, id,
	)
	if err != nil {
		return &domain.OutboxError{Op: "mark_failed", Err: err}
	}
	return nil
}

// Pending returns all queued entries, oldest first.
func (o *Outbox) Pending() ([]PendingEntry, error) {
	rows, err := o.db.Query(`
		SELECT id, organization_id, user_id, task_id, project_id, kind,
		       start_time, end_time, duration_seconds, description, billable,
		       attempts, last_error, created_at
		FROM pending_entries
		ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, &domain.OutboxError{Op: "pending", Err: err}
	}
	defer rows.Close()

	var pending []PendingEntry
	for rows.Next() {
		var p PendingEntry
		var kind string
		err := rows.Scan(
			&p.ID, &p.Entry.OrganizationID, &p.Entry.UserID,
			&p.Entry.TaskID, &p.Entry.ProjectID, &kind,
			&p.Entry.StartTime, &p.Entry.EndTime, &p.Entry.DurationSeconds,
			&p.Entry.Description, &p.Entry.Billable,
			&p.Attempts, &p.LastError, &p.CreatedAt,
		)
		if err != nil {
			return nil, &domain.OutboxError{Op: "pending", Err: err}
		}
		p.Entry.Kind = domain.SessionKind(kind)
		pending = append(pending, p)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.OutboxError{Op: "pending", Err: err}
	}

	return pending, nil
}

// Count returns the number of queued entries.
func (o *Outbox) Count() (int, error) {
	var n int
	if err := o.db.QueryRow("SELECT COUNT(*) FROM pending_entries").Scan(&n); err != nil {
		return 0, &domain.OutboxError{Op: "count", Err: err}
	}
	return n, nil
}
