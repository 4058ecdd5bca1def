// Package timer implements the session timer engine: a mutex-guarded state
// machine that accrues active seconds for the single in-flight work session,
// snapshots itself durably on every mutation, and survives process restarts
// without losing wall-clock time.
package timer

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ederavila/focal/internal/domain"
)

// SnapshotStore is the injected key-value capability holding the durable
// session snapshot under a single logical key. Get reports absence with an
// error satisfying errors.Is(err, os.ErrNotExist).
type SnapshotStore interface {
	Get() ([]byte, error)
	Set(data []byte) error
	Delete() error
}

// Options contains runtime options for the Engine.
type Options struct {
	Clock        Clock
	TickInterval time.Duration
	Logger       *slog.Logger
}

// Engine owns the canonical timer state and the tick loop. All mutations go
// through its methods; consumers observe via Subscribe.
type Engine struct {
	mu       sync.Mutex
	clock    Clock
	store    SnapshotStore
	logger   *slog.Logger
	interval time.Duration

	session         domain.TimerSession
	completionFired bool

	events []chan Event
	cancel chan struct{}
	wg     sync.WaitGroup
	closed bool
}

// New creates an Engine with the provided snapshot store and options.
func New(store SnapshotStore, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Engine{
		clock:    opts.Clock,
		store:    store,
		logger:   opts.Logger,
		interval: opts.TickInterval,
		session:  domain.ZeroSession(),
	}
}

// Subscribe registers a new observer channel. Events are delivered with a
// non-blocking send, so slow observers drop updates rather than stall ticks.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Session returns a copy of the current session state.
func (e *Engine) Session() domain.TimerSession {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

// Start begins a new session of the given kind. boundSeconds is zero for an
// unbounded free timer. Callers must ensure no conflicting session is already
// running; Start replaces whatever state is present.
func (e *Engine) Start(kind domain.SessionKind, boundSeconds uint32) {
	e.mu.Lock()
	now := e.clock.Now()
	e.session = domain.TimerSession{
		Running:      true,
		Kind:         kind,
		StartedAt:    &now,
		BoundSeconds: boundSeconds,
		Billable:     true,
	}
	e.completionFired = false
	e.persistLocked()
	e.rearmLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: now})
	e.mu.Unlock()

	e.logger.Info("session started", "kind", kind, "bound_seconds", boundSeconds)
}

// Pause freezes elapsed-time accrual. No-op when not running or already
// paused.
func (e *Engine) Pause() {
	e.mu.Lock()
	if !e.session.Running || e.session.Paused {
		e.mu.Unlock()
		return
	}
	e.session.Paused = true
	e.persistLocked()
	e.rearmLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: e.clock.Now()})
	e.mu.Unlock()
}

// Resume unfreezes accrual from the frozen elapsed value. Time spent paused
// is permanently excluded; the session is not re-anchored to StartedAt.
func (e *Engine) Resume() {
	e.mu.Lock()
	if !e.session.Running || !e.session.Paused {
		e.mu.Unlock()
		return
	}
	e.session.Paused = false
	e.persistLocked()
	e.rearmLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: e.clock.Now()})
	e.mu.Unlock()
}

// Stop computes the reconciled start/end/duration triple. It does not reset
// the session; the caller persists the triple and then calls Reset. Returns
// domain.ErrNoActiveSession when no session was ever started.
func (e *Engine) Stop() (domain.StopResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session.StartedAt == nil {
		return domain.StopResult{}, domain.ErrNoActiveSession
	}

	return domain.StopResult{
		StartTime:       *e.session.StartedAt,
		EndTime:         e.clock.Now(),
		DurationSeconds: e.session.ElapsedSeconds,
	}, nil
}

// Reset returns the session to the zero state and deletes the durable
// snapshot.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.session = domain.ZeroSession()
	e.completionFired = false
	if err := e.store.Delete(); err != nil {
		e.logger.Warn("failed to delete snapshot", "error", err)
	}
	e.rearmLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: e.clock.Now()})
	e.mu.Unlock()
}

// SetTask attaches or changes the associated work item.
func (e *Engine) SetTask(ref domain.TaskRef) {
	e.mu.Lock()
	e.session.Task = ref
	e.persistLocked()
	e.emitLocked(Event{Type: EventStateChange, Session: e.session, At: e.clock.Now()})
	e.mu.Unlock()
}

// SetDescription updates the free-text description.
func (e *Engine) SetDescription(text string) {
	e.mu.Lock()
	e.session.Description = text
	e.persistLocked()
	e.mu.Unlock()
}

// SetBillable updates the billable flag.
func (e *Engine) SetBillable(billable bool) {
	e.mu.Lock()
	e.session.Billable = billable
	e.persistLocked()
	e.mu.Unlock()
}

// Close tears down the tick loop and closes all observer channels.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	if e.cancel != nil {
		close(e.cancel)
		e.cancel = nil
	}
	events := e.events
	e.events = nil
	e.mu.Unlock()

	e.wg.Wait()
	for _, ch := range events {
		close(ch)
	}
}

// rearmLocked tears down and conditionally re-arms the tick loop. There is a
// single cancellation handle, so at most one ticking goroutine is ever live.
func (e *Engine) rearmLocked() {
	if e.cancel != nil {
		close(e.cancel)
		e.cancel = nil
	}
	if e.closed || !e.session.Running || e.session.Paused {
		return
	}
	cancel := make(chan struct{})
	e.cancel = cancel
	e.wg.Add(1)
	go e.run(cancel)
}

func (e *Engine) run(cancel chan struct{}) {
	defer e.wg.Done()

	ticker := e.clock.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-cancel:
			return
		case tickTime := <-ticker.C():
			e.tick(tickTime)
		}
	}
}

// tick advances elapsed time by one second. A bounded session that has
// reached its target stops accruing; the overrun is resolved by the consumer
// finalizing the session, never by further ticks.
func (e *Engine) tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.session.Running || e.session.Paused {
		return
	}
	if e.session.Complete() {
		e.emitCompletionLocked(now)
		return
	}

	e.session.ElapsedSeconds++
	e.persistLocked()
	e.emitLocked(Event{Type: EventTick, Session: e.session, At: now})

	if e.session.Complete() {
		e.emitCompletionLocked(now)
	}
}

func (e *Engine) emitCompletionLocked(now time.Time) {
	if e.completionFired {
		return
	}
	e.completionFired = true
	e.emitLocked(Event{Type: EventCompleted, Session: e.session, At: now})
}

func (e *Engine) persistLocked() {
	if e.session.Idle() {
		if err := e.store.Delete(); err != nil {
			e.logger.Warn("failed to delete snapshot", "error", err)
		}
		return
	}
	data, err := encodeSnapshot(e.session)
	if err != nil {
		e.logger.Warn("failed to encode snapshot", "error", err)
		return
	}
	if err := e.store.Set(data); err != nil {
		e.logger.Warn("failed to write snapshot", "error", err)
	}
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}
