package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ederavila/focal/internal/domain"
	"github.com/ederavila/focal/internal/ui/statusbar"
	"github.com/ederavila/focal/internal/ui/toast"
)

// View renders the full TUI frame
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	panel := lipgloss.JoinVertical(lipgloss.Center,
		m.renderTimer(),
		"",
		m.renderCycles(),
	)

	if m.mode == ModeInput {
		prompt := lipgloss.JoinHorizontal(lipgloss.Left,
			m.styles.InputLabel.Render("Description: "),
			m.descInput.View(),
		)
		panel = lipgloss.JoinVertical(lipgloss.Center, panel, "", prompt)
	}

	if m.mode == ModeConfirm {
		question := m.styles.PausedTag.Render("Abandon this cycle early? (y/n)")
		panel = lipgloss.JoinVertical(lipgloss.Center, panel, "", question)
	}

	sb := statusbar.New(m.mode, m.statusInfo(), m.width, m.styles)
	statusBarView := sb.Render()

	main := lipgloss.Place(
		m.width,
		m.height-lipgloss.Height(statusBarView),
		lipgloss.Center,
		lipgloss.Center,
		panel,
	)

	view := lipgloss.JoinVertical(lipgloss.Left, main, statusBarView)

	// Render toasts in bottom-right corner
	if len(m.toasts) > 0 {
		toastRenderer := toast.New(m.styles)
		toastView := toastRenderer.Render(m.toasts, m.width)
		if toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

// renderTimer draws the session readout: kind badge, clock, task line.
func (m Model) renderTimer() string {
	session := m.session

	badge := m.styles.KindBadge(session.Kind).Render(" " + session.Kind.Label() + " ")

	var clock string
	if session.Kind.Bounded() {
		clock = formatClock(session.RemainingSeconds())
	} else {
		clock = formatClock(session.ElapsedSeconds)
	}
	clockView := m.styles.ClockFor(session).Render(clock)

	header := lipgloss.JoinHorizontal(lipgloss.Center, badge, "  ", clockView)

	lines := []string{header}

	if session.Paused {
		lines = append(lines, m.styles.PausedTag.Render("paused"))
	} else if session.Complete() {
		lines = append(lines, m.styles.CycleHint.Render("cycle complete"))
	}

	if !session.Task.IsZero() {
		lines = append(lines, m.styles.TaskCode.Render(session.Task.TaskCode))
	}
	if session.Description != "" {
		lines = append(lines, m.styles.Description.Render(session.Description))
	}
	if session.Kind == domain.KindFreeTimer || session.Kind == domain.KindNone {
		if session.Billable {
			lines = append(lines, m.styles.Billable.Render("billable"))
		} else {
			lines = append(lines, m.styles.NonBillable.Render("non-billable"))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderCycles draws today's pomodoro progress as a dot row.
func (m Model) renderCycles() string {
	focus, brk := m.pomodoro.Counts()

	target := m.config.Timer.LongBreakEvery
	if target <= 0 {
		target = 4
	}

	filled := focus % target
	if filled == 0 && focus > 0 {
		filled = target
	}

	var dots strings.Builder
	for i := 0; i < target; i++ {
		if i < filled {
			dots.WriteString(m.styles.CycleDone.Render("●"))
		} else {
			dots.WriteString(m.styles.CyclePending.Render("○"))
		}
		if i < target-1 {
			dots.WriteString(" ")
		}
	}

	summary := m.styles.StatusInfo.Render(
		fmt.Sprintf("today: %d focus · %d break", focus, brk))

	return lipgloss.JoinVertical(lipgloss.Center, dots.String(), summary)
}

// statusInfo builds the right-hand status bar segment.
func (m Model) statusInfo() string {
	if m.syncing {
		return m.spinner.View() + " syncing"
	}
	if m.pending > 0 {
		return fmt.Sprintf("%d queued", m.pending)
	}
	return ""
}

// formatClock renders whole seconds as mm:ss, or h:mm:ss past an hour.
func formatClock(seconds uint32) string {
	h := seconds / 3600
	min := (seconds % 3600) / 60
	sec := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, min, sec)
	}
	return fmt.Sprintf("%02d:%02d", min, sec)
}
