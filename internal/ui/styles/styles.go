package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ederavila/focal/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Timer readout
	Clock        lipgloss.Style
	ClockPaused  lipgloss.Style
	ClockOverrun lipgloss.Style
	KindBadge    func(kind domain.SessionKind) lipgloss.Style
	TaskCode     lipgloss.Style
	Description  lipgloss.Style
	Billable     lipgloss.Style
	NonBillable  lipgloss.Style
	PausedTag    lipgloss.Style

	// Pomodoro cycle row
	CycleDone    lipgloss.Style
	CyclePending lipgloss.Style
	CycleHint    lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Input prompt
	InputLabel lipgloss.Style
	InputText  lipgloss.Style

	Separator lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Clock: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		ClockPaused: lipgloss.NewStyle().
			Foreground(Overlay0).
			Bold(true),

		ClockOverrun: lipgloss.NewStyle().
			Foreground(Red).
			Bold(true),

		KindBadge: func(kind domain.SessionKind) lipgloss.Style {
			color, ok := KindColors[kind.String()]
			if !ok {
				color = Overlay0
			}
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(color).
				Padding(0, 1).
				Bold(true)
		},

		TaskCode: lipgloss.NewStyle().
			Foreground(Overlay1).
			Bold(true),

		Description: lipgloss.NewStyle().
			Foreground(Subtext0),

		Billable: lipgloss.NewStyle().
			Foreground(Green),

		NonBillable: lipgloss.NewStyle().
			Foreground(Overlay0),

		PausedTag: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		CycleDone: lipgloss.NewStyle().
			Foreground(Blue),

		CyclePending: lipgloss.NewStyle().
			Foreground(Surface2),

		CycleHint: lipgloss.NewStyle().
			Foreground(Teal),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		InputLabel: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		InputText: lipgloss.NewStyle().
			Foreground(Text),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// ClockFor returns the readout style matching the session state
func (s *Styles) ClockFor(session domain.TimerSession) lipgloss.Style {
	switch {
	case session.Paused:
		return s.ClockPaused
	case session.Complete():
		return s.ClockOverrun
	default:
		return s.Clock
	}
}
