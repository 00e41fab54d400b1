package components

import (
	"strings"

	"github.com/framecast/framecast/internal/tui/styles"
)

type helpEntry struct {
	key  string
	desc string
}

// RenderHelpBar renders the shortcut hint line for the current session
// state.
func RenderHelpBar(styleSet styles.Styles, presenting bool) string {
	var entries []helpEntry
	if presenting {
		entries = []helpEntry{
			{"space/n/→", "next"},
			{"p/←", "previous"},
			{"esc", "stop"},
			{"q", "quit"},
		}
	} else {
		entries = []helpEntry{
			{"enter", "start"},
			{"j/k", "select"},
			{"J/K", "move frame"},
			{"r", "reload"},
			{"q", "quit"},
		}
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, styleSet.HelpKey.Render(entry.key)+" "+styleSet.HelpText.Render(entry.desc))
	}
	return strings.Join(parts, styleSet.HelpText.Render("  |  "))
}
