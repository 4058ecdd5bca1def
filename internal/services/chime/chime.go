// Package chime emits the short audible cue played when a pomodoro cycle
// completes. Fire-and-forget: a terminal that cannot sound the bell simply
// stays quiet.
package chime

import (
	"fmt"
	"io"
	"os"
)

// Ringer plays the completion cue.
type Ringer interface {
	Ring()
}

// TerminalBell rings by writing the BEL control character to the terminal.
type TerminalBell struct {
	out io.Writer
}

// NewTerminalBell creates a bell writing to out; nil means stderr, which
// stays attached to the terminal while the TUI owns stdout.
func NewTerminalBell(out io.Writer) *TerminalBell {
	if out == nil {
		out = os.Stderr
	}
	return &TerminalBell{out: out}
}

// Ring writes the bell character. Write errors are ignored.
func (b *TerminalBell) Ring() {
	fmt.Fprint(b.out, "\a")
}

// Silent is a Ringer that does nothing, used when the chime is disabled.
type Silent struct{}

func (Silent) Ring() {}
