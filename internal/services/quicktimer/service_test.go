package quicktimer

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/services/finalize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockEngine implements Engine for testing
type mockEngine struct {
	session     domain.TimerSession
	task        domain.TaskRef
	description string
	billable    bool
}

func (m *mockEngine) Session() domain.TimerSession { return m.session }

func (m *mockEngine) Start(kind domain.SessionKind, boundSeconds uint32) {
	now := time.Now()
	m.session = domain.TimerSession{
		Running:      true,
		Kind:         kind,
		StartedAt:    &now,
		BoundSeconds: boundSeconds,
		Billable:     true,
	}
}

func (m *mockEngine) SetTask(ref domain.TaskRef) { m.task = ref }
func (m *mockEngine) SetDescription(text string) { m.description = text }
func (m *mockEngine) SetBillable(billable bool)  { m.billable = billable }

// mockFinalizer implements Finalizer
type mockFinalizer struct {
	engine *mockEngine
	result finalize.Result
	calls  int
}

func (m *mockFinalizer) Finalize(ctx context.Context) (finalize.Result, error) {
	m.calls++
	result := m.result
	result.Kind = m.engine.session.Kind
	m.engine.session = domain.ZeroSession()
	return result, nil
}

func newTestService(t *testing.T) (*Service, *mockEngine, *mockFinalizer) {
	t.Helper()
	engine := &mockEngine{}
	finalizer := &mockFinalizer{engine: engine}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewService(engine, finalizer, logger), engine, finalizer
}

func TestStartStop(t *testing.T) {
	svc, engine, finalizer := newTestService(t)

	require.NoError(t, svc.Start())
	assert.Equal(t, domain.KindFreeTimer, engine.session.Kind)
	assert.Equal(t, uint32(0), engine.session.BoundSeconds)

	engine.session.ElapsedSeconds = 130
	finalizer.result = finalize.Result{DurationSeconds: 130}

	result, err := svc.Stop(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.KindFreeTimer, result.Kind)
	assert.Equal(t, uint32(130), result.DurationSeconds)
	assert.Equal(t, 1, finalizer.calls)
}

func TestStart_ConflictWhileRunning(t *testing.T) {
	svc, engine, _ := newTestService(t)

	now := time.Now()
	engine.session = domain.TimerSession{
		Running:   true,
		Kind:      domain.KindFocus,
		StartedAt: &now,
	}

	assert.ErrorIs(t, svc.Start(), domain.ErrTimerConflict)
	assert.Equal(t, domain.KindFocus, engine.session.Kind)
}

func TestStop_NoFreeTimer(t *testing.T) {
	svc, engine, finalizer := newTestService(t)

	_, err := svc.Stop(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)

	// A running focus cycle is not the quick timer's to stop.
	now := time.Now()
	engine.session = domain.TimerSession{
		Running:   true,
		Kind:      domain.KindFocus,
		StartedAt: &now,
	}
	_, err = svc.Stop(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoActiveSession)
	assert.Equal(t, 0, finalizer.calls)
}

func TestSetters_ApplyToCurrentSession(t *testing.T) {
	svc, engine, _ := newTestService(t)

	require.NoError(t, svc.Start())
	svc.SetTask(domain.TaskRef{TaskID: "t-1", TaskCode: "PRJ-9"})
	svc.SetDescription("standup notes")
	svc.SetBillable(false)

	assert.Equal(t, "t-1", engine.task.TaskID)
	assert.Equal(t, "standup notes", engine.description)
	assert.False(t, engine.billable)

	svc.SetDescription("sprint planning")
	assert.Equal(t, "sprint planning", engine.description)
}
