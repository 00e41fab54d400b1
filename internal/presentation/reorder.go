package presentation

import "github.com/framecast/framecast/internal/models"

// Reorder moves the element at fromIndex to toIndex and returns the new
// sequence together with the adjusted active index. The active index keeps
// the same logical frame highlighted: a move across the active position
// shifts it by one slot, and moving the active frame itself follows it to
// toIndex.
//
// Out-of-range indices or fromIndex == toIndex return the inputs unchanged.
// Malformed drag gestures are routine and must not disturb the session.
func Reorder(seq models.Sequence, fromIndex, toIndex, activeIndex int) (models.Sequence, int) {
	n := len(seq)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n || fromIndex == toIndex {
		return seq, activeIndex
	}

	moved := seq[fromIndex]
	out := make(models.Sequence, 0, n)
	out = append(out, seq[:fromIndex]...)
	out = append(out, seq[fromIndex+1:]...)
	out = append(out[:toIndex], append(models.Sequence{moved}, out[toIndex:]...)...)

	switch {
	case activeIndex == fromIndex:
		activeIndex = toIndex
	case fromIndex < activeIndex && activeIndex <= toIndex:
		activeIndex--
	case toIndex <= activeIndex && activeIndex < fromIndex:
		activeIndex++
	}

	return out, activeIndex
}
