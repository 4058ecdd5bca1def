package domain

import "time"

// TimeEntry is the immutable record written through the persistence API when
// a session finishes. IDs for organization and user come from configuration;
// everything else is derived from the session and its stop triple.
type TimeEntry struct {
	OrganizationID  string      `json:"organization_id"`
	UserID          string      `json:"user_id"`
	TaskID          string      `json:"task_id,omitempty"`
	ProjectID       string      `json:"project_id,omitempty"`
	Kind            SessionKind `json:"kind"`
	StartTime       time.Time   `json:"start_time"`
	EndTime         time.Time   `json:"end_time"`
	DurationSeconds uint32      `json:"duration_seconds"`
	Description     string      `json:"description,omitempty"`
	Billable        bool        `json:"billable"`
}

// CycleCounts tracks completed pomodoro cycles for a single day. The date is
// compared by calendar day so counters roll over at midnight local time.
type CycleCounts struct {
	Date  time.Time `json:"date"`
	Focus int       `json:"focus"`
	Break int       `json:"break"`
}

// SameDay reports whether t falls on the counted day.
func (c CycleCounts) SameDay(t time.Time) bool {
	y1, m1, d1 := c.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
