package styles

import (
	"testing"

	"github.com/ederavila/focal/internal/domain"
)

func TestNew(t *testing.T) {
	s := New()
	if s == nil {
		t.Fatal("New() returned nil")
	}
}

func TestKindBadge(t *testing.T) {
	s := New()

	tests := []struct {
		kind domain.SessionKind
		name string
	}{
		{domain.KindFocus, "Focus cycle"},
		{domain.KindBreak, "Break cycle"},
		{domain.KindFreeTimer, "Free timer"},
		{domain.KindNone, "Idle"},
		{domain.SessionKind("mystery"), "Unknown kind falls back"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := s.KindBadge(tt.kind)
			rendered := style.Render(tt.kind.Label())
			if len(rendered) == 0 {
				t.Error("KindBadge rendered empty string")
			}
		})
	}
}

func TestClockFor(t *testing.T) {
	s := New()

	running := domain.TimerSession{Running: true, Kind: domain.KindFreeTimer, ElapsedSeconds: 10}
	if got := s.ClockFor(running); got.GetForeground() != s.Clock.GetForeground() {
		t.Error("running session should use the default clock style")
	}

	paused := running
	paused.Paused = true
	if got := s.ClockFor(paused); got.GetForeground() != s.ClockPaused.GetForeground() {
		t.Error("paused session should use the paused clock style")
	}

	overrun := domain.TimerSession{Running: true, Kind: domain.KindFocus, ElapsedSeconds: 1500, BoundSeconds: 1500}
	if got := s.ClockFor(overrun); got.GetForeground() != s.ClockOverrun.GetForeground() {
		t.Error("completed cycle should use the overrun clock style")
	}
}

func TestThemeColors(t *testing.T) {
	// Verify colors are defined
	colors := []struct {
		name  string
		color string
	}{
		{"Base", string(Base)},
		{"Blue", string(Blue)},
		{"Red", string(Red)},
		{"Green", string(Green)},
		{"Yellow", string(Yellow)},
	}

	for _, c := range colors {
		t.Run(c.name, func(t *testing.T) {
			if c.color == "" {
				t.Errorf("%s color is empty", c.name)
			}
			// Catppuccin colors start with #
			if c.color[0] != '#' {
				t.Errorf("%s color doesn't start with #: %s", c.name, c.color)
			}
		})
	}
}
