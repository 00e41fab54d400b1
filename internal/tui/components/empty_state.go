// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/framecast/framecast/internal/tui/styles"
)

// EmptyState represents an empty state message with optional suggestions.
type EmptyState struct {
	// Icon is an optional icon to display (e.g., "🎞", "📄").
	Icon string
	// Title is the main empty state message.
	Title string
	// Subtitle is an optional secondary message.
	Subtitle string
	// Suggestions are actionable commands the user can run.
	Suggestions []Suggestion
}

// Suggestion represents a suggested command with description.
type Suggestion struct {
	// Command is the CLI command to run (e.g., "framecast doc import <path>").
	Command string
	// Description explains what the command does.
	Description string
}

// Render renders the empty state with the given styles.
func (e EmptyState) Render(styleSet styles.Styles) string {
	var lines []string

	titleLine := e.Title
	if e.Icon != "" {
		titleLine = e.Icon + "  " + titleLine
	}
	lines = append(lines, styleSet.Muted.Render(titleLine))

	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}

	if len(e.Suggestions) > 0 {
		lines = append(lines, "")
		lines = append(lines, styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			cmdLine := fmt.Sprintf("  %s", styleSet.Accent.Render(s.Command))
			if s.Description != "" {
				cmdLine += styleSet.Muted.Render(fmt.Sprintf("  # %s", s.Description))
			}
			lines = append(lines, cmdLine)
		}
	}

	return strings.Join(lines, "\n")
}

// RenderCompact renders a compact single-line empty state.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.Title
	if e.Icon != "" {
		line = e.Icon + " " + line
	}
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

// Common empty states for reuse across views.

// EmptyFrames returns an empty state for a scene with no frames.
func EmptyFrames() EmptyState {
	return EmptyState{
		Icon:     "🎞",
		Title:    "No frames in this document",
		Subtitle: "Frames are rectangular canvas regions that become slides.",
	}
}

// EmptyCanvas returns an empty state for a document with no shapes.
func EmptyCanvas() EmptyState {
	return EmptyState{
		Icon:     "📄",
		Title:    "The canvas is empty",
		Subtitle: "Add frames to the document and save to see them here.",
	}
}

// EmptyDocuments returns an empty state for when no documents are imported.
func EmptyDocuments() EmptyState {
	return EmptyState{
		Icon:     "📁",
		Title:    "No documents yet",
		Subtitle: "Documents are canvas files tracked by framecast.",
		Suggestions: []Suggestion{
			{Command: "framecast doc import <path>", Description: "import a canvas document"},
			{Command: "framecast present <name>", Description: "present an imported document"},
		},
	}
}
