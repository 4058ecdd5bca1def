package app

import (
	"strings"
	"testing"
	"time"

	"github.com/ederavila/focal/internal/domain"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds uint32
		want    string
	}{
		{0, "00:00"},
		{9, "00:09"},
		{59, "00:59"},
		{60, "01:00"},
		{130, "02:10"},
		{1500, "25:00"},
		{3599, "59:59"},
		{3600, "1:00:00"},
		{7325, "2:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatClock(tt.seconds); got != tt.want {
				t.Errorf("formatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestView_LoadingBeforeFirstResize(t *testing.T) {
	m, _ := newTestModel()
	m.width = 0
	m.height = 0

	if got := m.View(); got != "Loading..." {
		t.Errorf("Expected loading placeholder, got %q", got)
	}
}

func TestView_FreeTimerReadout(t *testing.T) {
	m, _ := newTestModel()
	m.session = domain.TimerSession{
		Running:        true,
		Kind:           domain.KindFreeTimer,
		ElapsedSeconds: 130,
		Description:    "code review",
		Billable:       true,
	}

	view := m.View()

	if !strings.Contains(view, "02:10") {
		t.Error("Expected elapsed clock in the view")
	}
	if !strings.Contains(view, "Timer") {
		t.Error("Expected kind badge in the view")
	}
	if !strings.Contains(view, "code review") {
		t.Error("Expected description in the view")
	}
	if !strings.Contains(view, "billable") {
		t.Error("Expected billable flag in the view")
	}
}

func TestView_FocusCountdown(t *testing.T) {
	m, _ := newTestModel()
	m.session = domain.TimerSession{
		Running:        true,
		Kind:           domain.KindFocus,
		ElapsedSeconds: 100,
		BoundSeconds:   1500,
		Billable:       true,
	}

	view := m.View()

	// Bounded sessions count down
	if !strings.Contains(view, "23:20") {
		t.Error("Expected remaining time in the view")
	}
	if !strings.Contains(view, "Focus") {
		t.Error("Expected focus badge in the view")
	}
}

func TestView_PausedTag(t *testing.T) {
	m, _ := newTestModel()
	m.session = domain.TimerSession{
		Running:        true,
		Paused:         true,
		Kind:           domain.KindFreeTimer,
		ElapsedSeconds: 30,
		Billable:       true,
	}

	if !strings.Contains(m.View(), "paused") {
		t.Error("Expected paused tag in the view")
	}
}

func TestView_ConfirmPrompt(t *testing.T) {
	m, _ := newTestModel()
	m.mode = ModeConfirm
	m.session = domain.TimerSession{Running: true, Kind: domain.KindFocus, BoundSeconds: 1500, Billable: true}

	if !strings.Contains(m.View(), "Abandon this cycle early?") {
		t.Error("Expected confirm prompt in the view")
	}
}

func TestView_ToastsRendered(t *testing.T) {
	m, _ := newTestModel()
	m.addToast(ToastError, "Sync failed", 5*time.Second)

	if !strings.Contains(m.View(), "Sync failed") {
		t.Error("Expected toast message in the view")
	}
}
