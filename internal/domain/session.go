package domain

import "time"

// SessionKind identifies what flavour of session the timer is tracking.
type SessionKind string

const (
	KindNone      SessionKind = "none"
	KindFreeTimer SessionKind = "free_timer"
	KindFocus     SessionKind = "focus_cycle"
	KindBreak     SessionKind = "break_cycle"
)

// String returns the display string
func (k SessionKind) String() string {
	return string(k)
}

// Bounded reports whether sessions of this kind run against a fixed duration.
func (k SessionKind) Bounded() bool {
	return k == KindFocus || k == KindBreak
}

// Label returns a human-readable name for the kind
func (k SessionKind) Label() string {
	switch k {
	case KindFreeTimer:
		return "Timer"
	case KindFocus:
		return "Focus"
	case KindBreak:
		return "Break"
	default:
		return "Idle"
	}
}

// TaskRef is a denormalized pointer to the work item a session is booked
// against. All fields may be empty for an unattached session.
type TaskRef struct {
	TaskID    string `json:"task_id,omitempty"`
	TaskCode  string `json:"task_code,omitempty"`
	ProjectID string `json:"project_id,omitempty"`
}

// IsZero reports whether no task is attached.
func (r TaskRef) IsZero() bool {
	return r.TaskID == "" && r.TaskCode == "" && r.ProjectID == ""
}

// TimerSession is the single in-flight timer value. It lives only in process
// memory and the local snapshot; a server-side row exists only after stop.
type TimerSession struct {
	Running        bool        `json:"running"`
	Paused         bool        `json:"paused"`
	Kind           SessionKind `json:"kind"`
	Task           TaskRef     `json:"task"`
	StartedAt      *time.Time  `json:"started_at,omitempty"`
	ElapsedSeconds uint32      `json:"elapsed_seconds"`
	BoundSeconds   uint32      `json:"bound_seconds,omitempty"`
	Description    string      `json:"description,omitempty"`
	Billable       bool        `json:"billable"`
}

// ZeroSession returns the idle session value.
func ZeroSession() TimerSession {
	return TimerSession{Kind: KindNone}
}

// Idle reports whether the session holds no trackable state, i.e. nothing
// worth snapshotting.
func (s TimerSession) Idle() bool {
	return !s.Running && s.ElapsedSeconds == 0
}

// Complete reports whether a bounded session has reached its target duration.
func (s TimerSession) Complete() bool {
	return s.BoundSeconds > 0 && s.ElapsedSeconds >= s.BoundSeconds
}

// RemainingSeconds returns the seconds left in a bounded session, 0 otherwise.
func (s TimerSession) RemainingSeconds() uint32 {
	if s.BoundSeconds == 0 || s.ElapsedSeconds >= s.BoundSeconds {
		return 0
	}
	return s.BoundSeconds - s.ElapsedSeconds
}

// Valid checks the structural invariants of the session value. A session read
// back from the snapshot store is discarded when this fails.
func (s TimerSession) Valid() bool {
	if s.Paused && !s.Running {
		return false
	}
	if s.Running != (s.StartedAt != nil) {
		return false
	}
	if s.Kind == KindNone && (s.Running || s.ElapsedSeconds != 0) {
		return false
	}
	return true
}

// StopResult is the reconciled triple handed to the persistence path when a
// session ends. DurationSeconds is accumulated active time, so paused
// intervals are excluded even though they fall inside [StartTime, EndTime].
type StopResult struct {
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds uint32
}
