// Package quicktimer is the thin consumer for unbounded ad-hoc timers tied
// to an optional task: explicit start, explicit stop, no auto-completion.
package quicktimer

import (
	"context"
	"log/slog"

	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/services/finalize"
)

// Engine is the subset of the timer engine the quick timer drives.
type Engine interface {
	Session() domain.TimerSession
	Start(kind domain.SessionKind, boundSeconds uint32)
	SetTask(ref domain.TaskRef)
	SetDescription(text string)
	SetBillable(billable bool)
}

// Finalizer ends the current session through the shared persist path.
type Finalizer interface {
	Finalize(ctx context.Context) (finalize.Result, error)
}

// Service drives free-running timers against the shared engine.
type Service struct {
	engine    Engine
	finalizer Finalizer
	logger    *slog.Logger
}

// NewService creates a quick-timer service.
func NewService(engine Engine, finalizer Finalizer, logger *slog.Logger) *Service {
	return &Service{
		engine:    engine,
		finalizer: finalizer,
		logger:    logger,
	}
}

// Start begins an unbounded free timer. Rejected with
// domain.ErrTimerConflict while any session is running; the Engine is shared
// with the pomodoro controller, so at most one session exists at a time.
func (s *Service) Start() error {
	if s.engine.Session().Running {
		return domain.ErrTimerConflict
	}
	s.engine.Start(domain.KindFreeTimer, 0)
	return nil
}

// Stop finalizes the running free timer, persisting its triple tagged as
// free_timer. Returns domain.ErrNoActiveSession when no free timer runs.
func (s *Service) Stop(ctx context.Context) (finalize.Result, error) {
	session := s.engine.Session()
	if !session.Running || session.Kind != domain.KindFreeTimer {
		return finalize.Result{}, domain.ErrNoActiveSession
	}

	result, err := s.finalizer.Finalize(ctx)
	if err != nil {
		return finalize.Result{}, err
	}

	s.logger.Info("quick timer stopped", "duration_seconds", result.DurationSeconds)
	return result, nil
}

// SetTask attaches or changes the associated work item. The entry created at
// stop carries whatever task is attached at that point.
func (s *Service) SetTask(ref domain.TaskRef) {
	s.engine.SetTask(ref)
}

// SetDescription updates the entry description.
func (s *Service) SetDescription(text string) {
	s.engine.SetDescription(text)
}

// SetBillable toggles the billable flag.
func (s *Service) SetBillable(billable bool) {
	s.engine.SetBillable(billable)
}
