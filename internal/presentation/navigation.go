package presentation

import "github.com/framecast/framecast/internal/models"

// NextIndex returns the slide index following current in a cyclic sequence
// of length n. A zero-length sequence always yields index 0.
func NextIndex(current, n int) int {
	if n <= 0 {
		return 0
	}
	return (current + 1) % n
}

// PreviousIndex returns the slide index preceding current in a cyclic
// sequence of length n. A zero-length sequence always yields index 0.
func PreviousIndex(current, n int) int {
	if n <= 0 {
		return 0
	}
	if current == 0 {
		return n - 1
	}
	return current - 1
}

// NavigateOptions control how the viewport moves to a frame.
type NavigateOptions struct {
	// FitToViewport scales the viewport so the frame is fully visible.
	FitToViewport bool

	// ZoomFill is the fraction of the viewport the frame should occupy,
	// in (0, 1]. Values below 1 leave a margin around the frame.
	ZoomFill float64

	// Animate requests an animated transition instead of a jump.
	Animate bool
}

// DefaultZoomFill is the viewport fraction a slide occupies during a
// presentation, leaving a margin on all sides.
const DefaultZoomFill = 0.7

// DefaultNavigateOptions returns the options used for slide transitions.
func DefaultNavigateOptions() NavigateOptions {
	return NavigateOptions{
		FitToViewport: true,
		ZoomFill:      DefaultZoomFill,
		Animate:       true,
	}
}

// NavigationRequest is the viewport side effect produced by a session
// operation. Requests are fire-and-forget: the state commit that follows
// never waits for the visual transition.
type NavigationRequest struct {
	Frame   models.FrameRef
	Options NavigateOptions
}
