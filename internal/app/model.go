// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ederavila/focal/internal/config"
	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/services/finalize"
	"github.com/ederavila/focal/internal/services/pomodoro"
	"github.com/ederavila/focal/internal/services/quicktimer"
	"github.com/ederavila/focal/internal/timer"
	"github.com/ederavila/focal/internal/types"
	"github.com/ederavila/focal/internal/ui/styles"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal  = types.ModeNormal
	ModeInput   = types.ModeInput
	ModeConfirm = types.ModeConfirm
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// sessionEngine is the slice of the timer engine the model drives directly.
type sessionEngine interface {
	Session() domain.TimerSession
	Pause()
	Resume()
}

// cycleController drives pomodoro cycles.
type cycleController interface {
	StartFocus() error
	StartBreak() error
	Complete(ctx context.Context) (pomodoro.Completion, error)
	Skip(ctx context.Context) (pomodoro.Completion, error)
	Counts() (focus, brk int)
}

// quickTimer drives free-running timers.
type quickTimer interface {
	Start() error
	Stop(ctx context.Context) (finalize.Result, error)
	SetDescription(text string)
	SetBillable(billable bool)
}

// uploader retries queued time entries against the remote API.
type uploader interface {
	Flush(ctx context.Context) (int, error)
	PendingCount() (int, error)
}

// Model is the main application state
type Model struct {
	// Services
	engine   sessionEngine
	pomodoro cycleController
	quick    quickTimer
	uploader uploader
	events   <-chan timer.Event

	// Last observed session state
	session domain.TimerSession

	// UI state
	mode   types.Mode
	toasts []Toast

	// Description prompt
	descInput textinput.Model

	// Sync state
	syncing bool
	pending int
	spinner spinner.Model

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config *config.Config

	// Logger
	logger *slog.Logger
}

// New creates the application model and subscribes it to engine events.
// The engine's Restore must run after this so the restored state is
// observed through the subscription.
func New(cfg *config.Config, engine *timer.Engine, ctrl *pomodoro.Controller, quick *quicktimer.Service, sync *finalize.Service, logger *slog.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	input := textinput.New()
	input.Placeholder = "what are you working on?"
	input.CharLimit = 200

	return Model{
		engine:    engine,
		pomodoro:  ctrl,
		quick:     quick,
		uploader:  sync,
		events:    engine.Subscribe(64),
		session:   engine.Session(),
		mode:      ModeNormal,
		toasts:    []Toast{},
		descInput: input,
		spinner:   s,
		styles:    styles.New(),
		config:    cfg,
		logger:    logger,
	}
}

// Messages produced by commands

type engineEventMsg timer.Event

type engineClosedMsg struct{}

type cycleFinishedMsg struct {
	completion pomodoro.Completion
	err        error
}

type timerStoppedMsg struct {
	result finalize.Result
	err    error
}

type flushDoneMsg struct {
	delivered int
	err       error
	// quiet suppresses the no-op and failure toasts for the automatic
	// flush at startup.
	quiet bool
}

type pendingCountMsg struct {
	count int
}

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.spinner.Tick,
		m.waitForEvent(),
		m.refreshPendingCmd(),
		tickEvery(time.Second),
	}
	// Retry entries left queued by earlier sessions.
	if m.config.API.BaseURL != "" {
		cmds = append(cmds, m.quietFlushCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case engineEventMsg:
		m.session = msg.Session
		if msg.Type == timer.EventCompleted && msg.Session.Kind.Bounded() {
			return m, tea.Batch(m.completeCycleCmd(), m.waitForEvent())
		}
		return m, m.waitForEvent()

	case engineClosedMsg:
		return m, nil

	case cycleFinishedMsg:
		m.session = m.engine.Session()
		if msg.err != nil {
			m.logger.Error("cycle finalization failed", "error", msg.err)
			m.addToast(ToastError, msg.err.Error(), 5*time.Second)
			return m, nil
		}
		cmd := m.handleCompletion(msg.completion)
		return m, cmd

	case timerStoppedMsg:
		m.session = m.engine.Session()
		if msg.err != nil {
			m.addToast(ToastError, msg.err.Error(), 5*time.Second)
			return m, nil
		}
		m.addToast(ToastSuccess,
			fmt.Sprintf("Timer stopped: %s tracked", formatClock(msg.result.DurationSeconds)),
			3*time.Second)
		if msg.result.SaveErr != nil {
			m.addToast(ToastWarning, "Entry queued, will retry sync", 5*time.Second)
		}
		return m, m.refreshPendingCmd()

	case flushDoneMsg:
		m.syncing = false
		switch {
		case msg.err != nil:
			m.logger.Error("outbox flush failed", "error", msg.err)
			if !msg.quiet {
				m.addToast(ToastError, fmt.Sprintf("Sync failed: %v", msg.err), 5*time.Second)
			}
		case msg.delivered > 0:
			m.addToast(ToastSuccess, fmt.Sprintf("Synced %d entries", msg.delivered), 3*time.Second)
		case !msg.quiet:
			m.addToast(ToastInfo, "Nothing to sync", 3*time.Second)
		}
		return m, m.refreshPendingCmd()

	case pendingCountMsg:
		m.pending = msg.count
		return m, nil

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)
	}

	return m, nil
}

// handleCompletion turns a finished or skipped cycle into user feedback.
func (m *Model) handleCompletion(c pomodoro.Completion) tea.Cmd {
	if c.Skipped {
		m.addToast(ToastInfo,
			fmt.Sprintf("%s skipped after %s", c.Kind.Label(), formatClock(c.DurationSeconds)),
			3*time.Second)
	} else {
		m.addToast(ToastSuccess,
			fmt.Sprintf("%s complete: %d focus today", c.Kind.Label(), c.FocusToday),
			4*time.Second)
	}
	if c.SuggestLongBreak {
		m.addToast(ToastInfo, "Time for a long break", 6*time.Second)
	}
	if c.SaveErr != nil {
		m.addToast(ToastWarning, "Entry queued, will retry sync", 5*time.Second)
	}
	return m.refreshPendingCmd()
}

// handleKey processes keyboard input based on current mode
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in any mode)
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	switch m.mode {
	case ModeInput:
		return m.handleInputMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	default:
		return m.handleNormalMode(msg)
	}
}

func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "f":
		if err := m.pomodoro.StartFocus(); err != nil {
			m.addToast(ToastError, err.Error(), 4*time.Second)
			return m, nil
		}
		m.session = m.engine.Session()
		m.addToast(ToastInfo, "Focus cycle started", 2*time.Second)
		return m, nil

	case "b":
		if err := m.pomodoro.StartBreak(); err != nil {
			m.addToast(ToastError, err.Error(), 4*time.Second)
			return m, nil
		}
		m.session = m.engine.Session()
		m.addToast(ToastInfo, "Break started", 2*time.Second)
		return m, nil

	case "t":
		if err := m.quick.Start(); err != nil {
			m.addToast(ToastError, err.Error(), 4*time.Second)
			return m, nil
		}
		m.session = m.engine.Session()
		m.addToast(ToastInfo, "Timer started", 2*time.Second)
		return m, nil

	case " ":
		if !m.session.Running {
			return m, nil
		}
		if m.session.Paused {
			m.engine.Resume()
		} else {
			m.engine.Pause()
		}
		m.session = m.engine.Session()
		return m, nil

	case "x":
		if !m.session.Running {
			return m, nil
		}
		if m.session.Kind.Bounded() {
			// Abandoning a cycle early drops it from the daily count,
			// so ask first.
			m.mode = ModeConfirm
			return m, nil
		}
		return m, m.stopTimerCmd()

	case "d":
		m.mode = ModeInput
		m.descInput.SetValue(m.session.Description)
		m.descInput.Focus()
		return m, textinput.Blink

	case "$":
		m.quick.SetBillable(!m.session.Billable)
		m.session = m.engine.Session()
		return m, nil

	case "u":
		if m.syncing {
			return m, nil
		}
		m.syncing = true
		return m, tea.Batch(m.flushCmd(), m.spinner.Tick)
	}

	return m, nil
}

func (m Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.descInput.Blur()
		return m, nil

	case "enter":
		m.mode = ModeNormal
		m.descInput.Blur()
		m.quick.SetDescription(m.descInput.Value())
		m.session = m.engine.Session()
		return m, nil
	}

	var cmd tea.Cmd
	m.descInput, cmd = m.descInput.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		m.mode = ModeNormal
		return m, m.skipCycleCmd()
	case "n", "esc":
		m.mode = ModeNormal
		return m, nil
	}
	return m, nil
}

// Commands

func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return engineClosedMsg{}
		}
		return engineEventMsg(event)
	}
}

func (m Model) completeCycleCmd() tea.Cmd {
	ctrl := m.pomodoro
	return func() tea.Msg {
		completion, err := ctrl.Complete(context.Background())
		return cycleFinishedMsg{completion: completion, err: err}
	}
}

func (m Model) skipCycleCmd() tea.Cmd {
	ctrl := m.pomodoro
	return func() tea.Msg {
		completion, err := ctrl.Skip(context.Background())
		return cycleFinishedMsg{completion: completion, err: err}
	}
}

func (m Model) stopTimerCmd() tea.Cmd {
	quick := m.quick
	return func() tea.Msg {
		result, err := quick.Stop(context.Background())
		return timerStoppedMsg{result: result, err: err}
	}
}

func (m Model) flushCmd() tea.Cmd {
	up := m.uploader
	return func() tea.Msg {
		delivered, err := up.Flush(context.Background())
		return flushDoneMsg{delivered: delivered, err: err}
	}
}

func (m Model) quietFlushCmd() tea.Cmd {
	up := m.uploader
	return func() tea.Msg {
		delivered, err := up.Flush(context.Background())
		return flushDoneMsg{delivered: delivered, err: err, quiet: true}
	}
}

func (m Model) refreshPendingCmd() tea.Cmd {
	up := m.uploader
	return func() tea.Msg {
		count, err := up.PendingCount()
		if err != nil {
			count = 0
		}
		return pendingCountMsg{count: count}
	}
}

// Toast helpers

func (m *Model) addToast(level ToastLevel, message string, ttl time.Duration) {
	m.toasts = append(m.toasts, Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(ttl),
	})
}

func (m *Model) expireToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}
