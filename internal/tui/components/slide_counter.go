package components

import (
	"fmt"

	"github.com/framecast/framecast/internal/tui/styles"
)

// RenderSlideCounter renders the position indicator for an active
// presentation. Position is one-based.
func RenderSlideCounter(styleSet styles.Styles, position, total int) string {
	if total <= 0 {
		return styleSet.Muted.Render("No slides")
	}
	return styleSet.Counter.Render(fmt.Sprintf("Slide %d / %d", position, total))
}

// RenderSessionBadge renders the session state indicator.
func RenderSessionBadge(styleSet styles.Styles, presenting bool) string {
	if presenting {
		return styleSet.Success.Render("● PRESENTING")
	}
	return styleSet.Muted.Render("○ idle")
}
