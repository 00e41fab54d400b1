// Package tui implements the framecast presenter interface.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/framecast/framecast/internal/scene"
)

// tickMsg drives camera animation.
type tickMsg time.Time

const tickInterval = 33 * time.Millisecond

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sceneReloadedMsg carries a scene freshly reparsed from disk.
type sceneReloadedMsg struct {
	Scene *scene.Scene
}

// watcherClosedMsg indicates the file watcher stopped delivering.
type watcherClosedMsg struct{}

// waitForSceneCmd blocks on the watcher channel until the document
// changes on disk.
func waitForSceneCmd(watcher *scene.Watcher) tea.Cmd {
	return func() tea.Msg {
		sc, ok := <-watcher.Scenes()
		if !ok {
			return watcherClosedMsg{}
		}
		return sceneReloadedMsg{Scene: sc}
	}
}
