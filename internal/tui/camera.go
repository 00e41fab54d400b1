package tui

import (
	"time"

	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/presentation"
	"github.com/framecast/framecast/internal/scene"
	"github.com/framecast/framecast/internal/tui/components"
)

// cameraAnimator drives the canvas camera toward navigation targets. It
// receives navigation requests from the sequencing controller and eases
// the visible camera toward the requested frame on each tick.
type cameraAnimator struct {
	width    int
	height   int
	duration time.Duration

	current   components.Camera
	target    components.Camera
	from      components.Camera
	started   time.Time
	animating bool
}

func newCameraAnimator(duration time.Duration) *cameraAnimator {
	return &cameraAnimator{duration: duration}
}

// SetViewport records the canvas pane size used to compute zoom targets.
func (c *cameraAnimator) SetViewport(width, height int) {
	c.width = width
	c.height = height
	if c.current.Zoom <= 0 && c.target.Zoom > 0 {
		c.current = c.target
	}
}

// NavigateTo retargets the camera at the given frame. A request that
// arrives mid-animation restarts the ease from the current position.
func (c *cameraAnimator) NavigateTo(frame models.FrameRef, opts presentation.NavigateOptions) {
	fill := opts.ZoomFill
	if !opts.FitToViewport {
		fill = 0
	}

	target := components.CameraForFrame(scene.Shape{
		X:      frame.X,
		Y:      frame.Y,
		Width:  frame.Width,
		Height: frame.Height,
	}, c.width, c.height, fill)

	if !opts.FitToViewport {
		// Pan only, keep the current zoom when one is set.
		if c.current.Zoom > 0 {
			target.Zoom = c.current.Zoom
		}
	}

	if !opts.Animate || c.duration <= 0 || c.current.Zoom <= 0 {
		c.current = target
		c.target = target
		c.animating = false
		return
	}

	c.from = c.current
	c.target = target
	c.started = time.Now()
	c.animating = true
}

// Step advances the animation. It reports whether the camera is still
// moving.
func (c *cameraAnimator) Step(now time.Time) bool {
	if !c.animating {
		return false
	}

	progress := float64(now.Sub(c.started)) / float64(c.duration)
	if progress >= 1 {
		c.current = c.target
		c.animating = false
		return false
	}
	if progress < 0 {
		progress = 0
	}

	// Smoothstep easing.
	eased := progress * progress * (3 - 2*progress)
	c.current = components.Camera{
		CenterX: lerp(c.from.CenterX, c.target.CenterX, eased),
		CenterY: lerp(c.from.CenterY, c.target.CenterY, eased),
		Zoom:    lerp(c.from.Zoom, c.target.Zoom, eased),
	}
	return true
}

// Camera returns the current camera position.
func (c *cameraAnimator) Camera() components.Camera {
	return c.current
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}
