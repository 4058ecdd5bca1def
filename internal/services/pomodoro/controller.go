// Package pomodoro layers fixed-duration focus/break cycle semantics on top
// of the timer engine: conflict-checked starts, auto-completion when a cycle
// reaches its bound, manual skips, and same-day cycle counting.
package pomodoro

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/services/chime"
	"github.com/ederavila/focal/internal/services/finalize"
)

// Engine is the subset of the timer engine the controller drives.
type Engine interface {
	Session() domain.TimerSession
	Start(kind domain.SessionKind, boundSeconds uint32)
}

// Finalizer ends the current session through the shared persist path.
type Finalizer interface {
	Finalize(ctx context.Context) (finalize.Result, error)
}

// Config contains cycle durations and cadence.
type Config struct {
	FocusSeconds   uint32
	BreakSeconds   uint32
	LongBreakEvery int
}

// Controller owns the pomodoro cycle state machine.
type Controller struct {
	engine    Engine
	finalizer Finalizer
	ringer    chime.Ringer
	logger    *slog.Logger
	config    Config
	now       func() time.Time

	mu     sync.Mutex
	counts domain.CycleCounts
}

// NewController creates a pomodoro controller. now may be nil for the system
// clock.
func NewController(engine Engine, finalizer Finalizer, ringer chime.Ringer, config Config, logger *slog.Logger, now func() time.Time) *Controller {
	if config.FocusSeconds == 0 {
		config.FocusSeconds = 25 * 60
	}
	if config.BreakSeconds == 0 {
		config.BreakSeconds = 5 * 60
	}
	if config.LongBreakEvery <= 0 {
		config.LongBreakEvery = 4
	}
	if ringer == nil {
		ringer = chime.Silent{}
	}
	if now == nil {
		now = time.Now
	}

	return &Controller{
		engine:    engine,
		finalizer: finalizer,
		ringer:    ringer,
		logger:    logger,
		config:    config,
		now:       now,
	}
}

// StartFocus begins a focus cycle. Rejected with domain.ErrTimerConflict if
// any session is already running; the running session is left untouched.
func (c *Controller) StartFocus() error {
	return c.start(domain.KindFocus, c.config.FocusSeconds)
}

// StartBreak begins a break cycle, with the same conflict rule.
func (c *Controller) StartBreak() error {
	return c.start(domain.KindBreak, c.config.BreakSeconds)
}

func (c *Controller) start(kind domain.SessionKind, bound uint32) error {
	if c.engine.Session().Running {
		return domain.ErrTimerConflict
	}
	c.engine.Start(kind, bound)
	return nil
}

// Completion is the outcome of finishing or skipping a cycle, carrying
// everything the UI needs for its notification.
type Completion struct {
	Kind             domain.SessionKind
	DurationSeconds  uint32
	Skipped          bool
	FocusToday       int
	BreakToday       int
	SuggestLongBreak bool
	SaveErr          error
}

// Complete finalizes a cycle that reached its bound: chime, persist, count,
// reset. Invoked by the UI when the engine reports completion; once the
// engine has been reset the bound check cannot re-fire, so a duplicate
// completion event is rejected here via the running check.
func (c *Controller) Complete(ctx context.Context) (Completion, error) {
	session := c.engine.Session()
	if !session.Running || !session.Kind.Bounded() {
		return Completion{}, domain.ErrNoActiveSession
	}

	c.ringer.Ring()

	result, err := c.finalizer.Finalize(ctx)
	if err != nil {
		return Completion{}, err
	}

	completion := Completion{
		Kind:            result.Kind,
		DurationSeconds: result.DurationSeconds,
		SaveErr:         result.SaveErr,
	}
	c.recordCycle(&completion)

	c.logger.Info("cycle completed",
		"kind", completion.Kind,
		"duration_seconds", completion.DurationSeconds,
		"focus_today", completion.FocusToday)
	return completion, nil
}

// Skip finalizes the in-progress cycle before its bound: persists whatever
// partial duration accrued and reports it. Does not count toward the daily
// completed-cycle totals.
func (c *Controller) Skip(ctx context.Context) (Completion, error) {
	session := c.engine.Session()
	if !session.Running || !session.Kind.Bounded() {
		return Completion{}, domain.ErrNoActiveSession
	}

	result, err := c.finalizer.Finalize(ctx)
	if err != nil {
		return Completion{}, err
	}

	c.mu.Lock()
	focus, brk := c.counts.Focus, c.counts.Break
	c.mu.Unlock()

	c.logger.Info("cycle skipped",
		"kind", result.Kind,
		"duration_seconds", result.DurationSeconds)
	return Completion{
		Kind:            result.Kind,
		DurationSeconds: result.DurationSeconds,
		Skipped:         true,
		FocusToday:      focus,
		BreakToday:      brk,
		SaveErr:         result.SaveErr,
	}, nil
}

// Counts returns today's completed cycle counters.
func (c *Controller) Counts() (focus, brk int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.counts.SameDay(c.now()) {
		return 0, 0
	}
	return c.counts.Focus, c.counts.Break
}

func (c *Controller) recordCycle(completion *Completion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if !c.counts.SameDay(now) {
		c.counts = domain.CycleCounts{Date: now}
	}

	switch completion.Kind {
	case domain.KindFocus:
		c.counts.Focus++
	case domain.KindBreak:
		c.counts.Break++
	}

	completion.FocusToday = c.counts.Focus
	completion.BreakToday = c.counts.Break
	completion.SuggestLongBreak = completion.Kind == domain.KindFocus &&
		c.counts.Focus > 0 &&
		c.counts.Focus%c.config.LongBreakEvery == 0
}
