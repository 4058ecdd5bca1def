package timer

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/ederavila/focal/internal/domain"
)

// snapshotVersion guards against reading snapshots written by an
// incompatible build. Mismatches are treated the same as corruption.
const snapshotVersion = 1

type snapshot struct {
	Version int                 `json:"version"`
	Session domain.TimerSession `json:"session"`
	SavedAt time.Time           `json:"saved_at"`
}

func encodeSnapshot(session domain.TimerSession) ([]byte, error) {
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		Session: session,
		SavedAt: time.Now(),
	})
}

func decodeSnapshot(data []byte) (domain.TimerSession, bool) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.ZeroSession(), false
	}
	if snap.Version != snapshotVersion || !snap.Session.Valid() {
		return domain.ZeroSession(), false
	}
	return snap.Session, true
}

// Restore rehydrates the engine from the durable snapshot, if any. A session
// found running and unpaused has its elapsed seconds recomputed from the
// wall-clock delta since StartedAt, so time that passed while the process was
// not scheduled keeps accruing instead of being silently dropped. A paused
// session is restored verbatim. Absent or corrupt snapshots leave the engine
// in the zero state without error.
//
// Call Restore after Subscribe so observers see the restored state, and
// before any Start.
func (e *Engine) Restore() {
	data, err := e.store.Get()
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.logger.Warn("failed to read snapshot", "error", err)
		}
		return
	}

	session, ok := decodeSnapshot(data)
	if !ok {
		e.logger.Warn("discarding unreadable snapshot")
		if err := e.store.Delete(); err != nil {
			e.logger.Warn("failed to delete snapshot", "error", err)
		}
		return
	}
	if session.Idle() {
		return
	}

	e.mu.Lock()
	now := e.clock.Now()
	if session.Running && !session.Paused {
		delta := now.Sub(*session.StartedAt)
		if delta < 0 {
			delta = 0
		}
		session.ElapsedSeconds = uint32(delta / time.Second)
	}
	e.session = session
	e.persistLocked()
	e.rearmLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: now})
	if e.session.Running && !e.session.Paused && e.session.Complete() {
		e.emitCompletionLocked(now)
	}
	e.mu.Unlock()

	e.logger.Info("session restored",
		"kind", session.Kind,
		"running", session.Running,
		"paused", session.Paused,
		"elapsed_seconds", session.ElapsedSeconds)
}
