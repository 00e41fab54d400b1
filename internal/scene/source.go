package scene

import (
	"sync"

	"github.com/framecast/framecast/internal/models"
)

// Source adapts a Scene to the sequencing engine's frame source and
// allows the scene to be swapped when the document changes on disk.
type Source struct {
	mu    sync.RWMutex
	scene *Scene
}

// NewSource wraps a scene. The scene may be nil.
func NewSource(s *Scene) *Source {
	return &Source{scene: s}
}

// Frames returns the live frame set of the current scene.
func (s *Source) Frames() []models.FrameRef {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.scene == nil {
		return nil
	}
	return s.scene.Frames()
}

// Scene returns the current scene.
func (s *Source) Scene() *Scene {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scene
}

// Swap replaces the current scene.
func (s *Source) Swap(next *Scene) {
	s.mu.Lock()
	s.scene = next
	s.mu.Unlock()
}
