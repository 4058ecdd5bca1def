package statusbar

import "github.com/ederavila/focal/internal/types"

// GetHints returns the keybinding hints for the given mode
func GetHints(mode types.Mode) string {
	switch mode {
	case types.ModeNormal:
		return "f: focus  b: break  t: timer  Space: pause  x: stop  d: describe  $: billable  u: sync  q: quit"
	case types.ModeInput:
		return "Enter: save  Esc: cancel"
	case types.ModeConfirm:
		return "y: confirm  n/Esc: cancel"
	default:
		return ""
	}
}
