// Package types contains shared types used across the application.
package types

// Mode represents the current input mode of the TUI
type Mode int

const (
	ModeNormal Mode = iota
	ModeInput
	ModeConfirm
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}
