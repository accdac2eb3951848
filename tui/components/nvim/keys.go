package nvim

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// keyToNvim translates a tea.KeyMsg into the <keyname> notation the
// editor's input() call expects.
func keyToNvim(msg tea.KeyMsg) string {
	keyStr := msg.String()
	switch msg.Type {
	case tea.KeySpace:
		return "<Space>"
	case tea.KeyEnter:
		return "<CR>"
	case tea.KeyBackspace:
		return "<BS>"
	case tea.KeyTab:
		return "<Tab>"
	case tea.KeyEsc:
		return "<Esc>"
	case tea.KeyUp:
		return "<Up>"
	case tea.KeyDown:
		return "<Down>"
	case tea.KeyLeft:
		return "<Left>"
	case tea.KeyRight:
		return "<Right>"
	case tea.KeyRunes:
		if len(keyStr) == 1 {
			switch keyStr {
			case "<":
				return "<LT>"
			case "\\":
				return "<Bslash>"
			}
		}
	}

	if msg.Alt && len(keyStr) > 4 && keyStr[:4] == "alt+" {
		return fmt.Sprintf("<M-%s>", keyStr[4:])
	}

	// tea.KeyMsg.String() for ctrl+char is "ctrl+char"; the backend
	// expects "<C-char>".
	if len(keyStr) > 5 && keyStr[:5] == "ctrl+" {
		return fmt.Sprintf("<C-%s>", keyStr[5:])
	}

	return keyStr
}
