// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/tui/styles"
)

// FrameListData contains data for rendering the slide order panel.
type FrameListData struct {
	// Frames is the presentation order to display.
	Frames []models.FrameRef

	// Labels maps frame IDs to display labels. Missing entries fall
	// back to the frame ID.
	Labels map[string]string

	// ActiveID is the frame currently shown, empty when idle.
	ActiveID string

	// Cursor is the index of the selected row for reordering.
	Cursor int

	// Presenting dims every row except the active frame.
	Presenting bool
}

// RenderFrameList renders the ordered slide panel.
func RenderFrameList(styleSet styles.Styles, data FrameListData, width int) string {
	if len(data.Frames) == 0 {
		empty := EmptyFrames()
		return renderPanelContainer(styleSet, "Slides", []string{empty.RenderCompact(styleSet)}, width)
	}

	lines := make([]string, 0, len(data.Frames))
	for i, frame := range data.Frames {
		label := data.Labels[frame.ID]
		if label == "" {
			label = frame.ID
		}

		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}

		line := fmt.Sprintf("%s %2d  %s", cursor, i+1, truncateLabel(label, width-10))
		switch {
		case frame.ID == data.ActiveID:
			line = styleSet.FrameActive.Render(line)
		case data.Presenting:
			line = styleSet.FrameDim.Render(line)
		case i == data.Cursor:
			line = styleSet.Focus.Render(line)
		default:
			line = styleSet.Text.Render(line)
		}
		lines = append(lines, line)
	}

	return renderPanelContainer(styleSet, "Slides", lines, width)
}

func renderPanelContainer(styleSet styles.Styles, title string, lines []string, width int) string {
	header := styleSet.Accent.Render(title)
	content := strings.Join(append([]string{header}, lines...), "\n")
	return styleSet.Panel.Copy().Width(width).Padding(0, 1).Render(content)
}

func truncateLabel(label string, maxLen int) string {
	if maxLen < 4 {
		maxLen = 4
	}
	if len(label) <= maxLen {
		return label
	}
	return label[:maxLen-3] + "..."
}
