// Package scene provides canvas document loading and frame extraction.
package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/framecast/framecast/internal/models"
)

var (
	// ErrSceneNameRequired is returned when a scene has no name.
	ErrSceneNameRequired = errors.New("scene name is required")
	// ErrSceneNotFound is returned when a scene file does not exist.
	ErrSceneNotFound = errors.New("scene not found")
)

// ShapeKind identifies the type of a canvas shape.
type ShapeKind string

const (
	ShapeKindFrame     ShapeKind = "frame"
	ShapeKindRectangle ShapeKind = "rectangle"
	ShapeKindEllipse   ShapeKind = "ellipse"
	ShapeKindArrow     ShapeKind = "arrow"
	ShapeKindText      ShapeKind = "text"
	ShapeKindFreedraw  ShapeKind = "freedraw"
)

// ShapeValidationError describes a validation error in a scene shape.
type ShapeValidationError struct {
	Index   int
	Message string
}

func (e *ShapeValidationError) Error() string {
	return fmt.Sprintf("scene shapes[%d]: %s", e.Index, e.Message)
}

// Shape is a single canvas element. Only shapes of kind "frame" take part
// in presentations; the rest are carried so that a scene file survives a
// load/save round trip.
type Shape struct {
	ID      string    `yaml:"id"`
	Kind    ShapeKind `yaml:"kind"`
	X       float64   `yaml:"x"`
	Y       float64   `yaml:"y"`
	Width   float64   `yaml:"width"`
	Height  float64   `yaml:"height"`
	Label   string    `yaml:"label,omitempty"`
	Deleted bool      `yaml:"deleted,omitempty"`
}

// Scene is a canvas document: a named collection of shapes.
type Scene struct {
	Name   string  `yaml:"name"`
	Shapes []Shape `yaml:"shapes"`
	Source string  `yaml:"-"` // file path, set on load
}

// Frames returns the non-deleted frame shapes as FrameRefs, implementing
// the sequencing engine's frame source contract.
func (s *Scene) Frames() []models.FrameRef {
	var frames []models.FrameRef
	for _, shape := range s.Shapes {
		if shape.Kind != ShapeKindFrame || shape.Deleted {
			continue
		}
		frames = append(frames, models.FrameRef{
			ID:     shape.ID,
			X:      shape.X,
			Y:      shape.Y,
			Width:  shape.Width,
			Height: shape.Height,
		})
	}
	return frames
}

// FrameLabel returns the label of the frame with the given ID, falling
// back to the ID when the frame has no label.
func (s *Scene) FrameLabel(id string) string {
	for _, shape := range s.Shapes {
		if shape.ID == id && shape.Label != "" {
			return shape.Label
		}
	}
	return id
}

// Bounds returns the bounding box covering every non-deleted shape.
// The ok result is false for a scene with no visible shapes.
func (s *Scene) Bounds() (minX, minY, maxX, maxY float64, ok bool) {
	for _, shape := range s.Shapes {
		if shape.Deleted {
			continue
		}
		if !ok {
			minX, minY = shape.X, shape.Y
			maxX, maxY = shape.X+shape.Width, shape.Y+shape.Height
			ok = true
			continue
		}
		if shape.X < minX {
			minX = shape.X
		}
		if shape.Y < minY {
			minY = shape.Y
		}
		if shape.X+shape.Width > maxX {
			maxX = shape.X + shape.Width
		}
		if shape.Y+shape.Height > maxY {
			maxY = shape.Y + shape.Height
		}
	}
	return minX, minY, maxX, maxY, ok
}

// Validate checks that the scene is well formed.
func (s *Scene) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrSceneNameRequired
	}

	seen := make(map[string]bool, len(s.Shapes))
	for i, shape := range s.Shapes {
		if strings.TrimSpace(shape.ID) == "" {
			return &ShapeValidationError{Index: i, Message: "id is required"}
		}
		if seen[shape.ID] {
			return &ShapeValidationError{Index: i, Message: fmt.Sprintf("duplicate id %q", shape.ID)}
		}
		seen[shape.ID] = true
		if shape.Kind == "" {
			return &ShapeValidationError{Index: i, Message: "kind is required"}
		}
		if shape.Width < 0 || shape.Height < 0 {
			return &ShapeValidationError{Index: i, Message: "negative dimensions"}
		}
	}
	return nil
}
