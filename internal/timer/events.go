package timer

import (
	"time"

	"github.com/ederavila/focal/internal/domain"
)

// EventType defines the type of engine event.
type EventType string

const (
	// EventStateChange fires on start, pause, resume, reset and restore.
	EventStateChange EventType = "state_change"
	// EventTick fires once per accrued second while running and unpaused.
	EventTick EventType = "tick"
	// EventCompleted fires exactly once when a bounded session reaches its
	// target duration. The engine freezes accrual until the session is
	// finalized by a consumer.
	EventCompleted EventType = "completed"
)

// Event represents an engine update for observers. Session is a copy of the
// state at emit time.
type Event struct {
	Type    EventType
	Session domain.TimerSession
	At      time.Time
}
