package components

import (
	"strings"
	"testing"

	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/tui/styles"
)

func TestRenderFrameList_Empty(t *testing.T) {
	styleSet := styles.DefaultStyles()

	result := RenderFrameList(styleSet, FrameListData{}, 60)

	if !strings.Contains(result, "No frames") {
		t.Error("Empty list should show 'No frames'")
	}
}

func TestRenderFrameList_ShowsOrderAndLabels(t *testing.T) {
	styleSet := styles.DefaultStyles()
	data := FrameListData{
		Frames: []models.FrameRef{
			{ID: "f1"},
			{ID: "f2"},
		},
		Labels: map[string]string{"f1": "Intro"},
	}

	result := RenderFrameList(styleSet, data, 60)

	if !strings.Contains(result, "Intro") {
		t.Error("List should show the frame label")
	}
	if !strings.Contains(result, "f2") {
		t.Error("List should fall back to the frame ID when no label exists")
	}
	if !strings.Contains(result, "Slides") {
		t.Error("List should render the panel title")
	}
}

func TestRenderFrameList_CursorMarker(t *testing.T) {
	styleSet := styles.DefaultStyles()
	data := FrameListData{
		Frames: []models.FrameRef{{ID: "f1"}, {ID: "f2"}},
		Cursor: 1,
	}

	result := RenderFrameList(styleSet, data, 60)

	if !strings.Contains(result, "> ") {
		t.Error("Selected row should carry the cursor marker")
	}
}

func TestTruncateLabel(t *testing.T) {
	got := truncateLabel("a very long frame label indeed", 12)
	if len(got) != 12 {
		t.Errorf("truncated label length = %d, want 12", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated label %q should end with ellipsis", got)
	}
	if truncateLabel("short", 12) != "short" {
		t.Error("short labels should pass through unchanged")
	}
}

func TestRenderSlideCounter(t *testing.T) {
	styleSet := styles.DefaultStyles()

	if got := RenderSlideCounter(styleSet, 2, 5); !strings.Contains(got, "Slide 2 / 5") {
		t.Errorf("counter = %q, want it to contain 'Slide 2 / 5'", got)
	}
	if got := RenderSlideCounter(styleSet, 0, 0); !strings.Contains(got, "No slides") {
		t.Errorf("empty counter = %q, want 'No slides'", got)
	}
}

func TestRenderSessionBadge(t *testing.T) {
	styleSet := styles.DefaultStyles()

	if got := RenderSessionBadge(styleSet, true); !strings.Contains(got, "PRESENTING") {
		t.Errorf("active badge = %q", got)
	}
	if got := RenderSessionBadge(styleSet, false); !strings.Contains(got, "idle") {
		t.Errorf("idle badge = %q", got)
	}
}

func TestRenderHelpBar(t *testing.T) {
	styleSet := styles.DefaultStyles()

	idle := RenderHelpBar(styleSet, false)
	if !strings.Contains(idle, "enter") || !strings.Contains(idle, "start") {
		t.Error("Idle help should mention starting a session")
	}

	presenting := RenderHelpBar(styleSet, true)
	if !strings.Contains(presenting, "next") || !strings.Contains(presenting, "esc") {
		t.Error("Presenting help should mention next and esc")
	}
}
