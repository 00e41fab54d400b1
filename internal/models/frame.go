// Package models defines the core data types shared across Framecast.
package models

// FrameRef identifies a presentable canvas region together with its
// bounding geometry. The sequencing engine only ever reads geometry;
// frames are created and destroyed by canvas edits.
type FrameRef struct {
	// ID is the unique identifier of the frame within its document.
	ID string `json:"id" yaml:"id"`

	// X is the horizontal origin of the frame on the canvas.
	X float64 `json:"x" yaml:"x"`

	// Y is the vertical origin of the frame on the canvas.
	Y float64 `json:"y" yaml:"y"`

	// Width is the frame width in canvas units.
	Width float64 `json:"width" yaml:"width"`

	// Height is the frame height in canvas units.
	Height float64 `json:"height" yaml:"height"`
}

// Sequence is an ordered list of frames defining presentation order.
// Member IDs are unique; insertion order is slide order.
type Sequence []FrameRef

// IDs returns the frame IDs in sequence order.
func (s Sequence) IDs() []string {
	ids := make([]string, len(s))
	for i, f := range s {
		ids[i] = f.ID
	}
	return ids
}

// IndexOf returns the position of the frame with the given ID, or -1.
func (s Sequence) IndexOf(id string) int {
	for i, f := range s {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a frame with the given ID is in the sequence.
func (s Sequence) Contains(id string) bool {
	return s.IndexOf(id) >= 0
}

// Clone returns a copy of the sequence backed by fresh storage.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	copy(out, s)
	return out
}

// Equal reports whether two sequences hold the same frames in the same order.
func (s Sequence) Equal(other Sequence) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
