// Package presentation implements the slide sequencing engine: default
// ordering, reconciliation against the live frame set, cyclic navigation,
// reordering, and the presentation session state machine.
package presentation

import (
	"sort"

	"github.com/framecast/framecast/internal/models"
)

// DefaultOrder derives the positional slide order for a set of frames:
// ascending vertical origin, ties broken by horizontal origin, then by ID
// so equal positions still order reproducibly.
func DefaultOrder(frames []models.FrameRef) models.Sequence {
	ordered := make(models.Sequence, len(frames))
	copy(ordered, frames)

	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.ID < b.ID
	})

	return ordered
}

// Reconcile merges a previously persisted custom order with the live frame
// set. Surviving entries keep their relative order; frames not present in
// the persisted order are appended in default order. If the persisted order
// is empty, or none of its members survive, the custom order carries no
// information and the positional default is returned instead.
//
// Reconcile is idempotent for a stable frame set:
// Reconcile(Reconcile(p, s), s) == Reconcile(p, s).
func Reconcile(persisted models.Sequence, current []models.FrameRef) models.Sequence {
	if len(persisted) == 0 {
		return DefaultOrder(current)
	}

	live := make(map[string]models.FrameRef, len(current))
	for _, f := range current {
		live[f.ID] = f
	}

	kept := make(models.Sequence, 0, len(persisted))
	for _, f := range persisted {
		if fresh, ok := live[f.ID]; ok {
			// Take geometry from the live set; persisted entries may
			// carry stale positions.
			kept = append(kept, fresh)
		}
	}

	seen := make(map[string]bool, len(kept))
	for _, f := range kept {
		seen[f.ID] = true
	}
	var missing []models.FrameRef
	for _, f := range current {
		if !seen[f.ID] {
			missing = append(missing, f)
		}
	}
	added := DefaultOrder(missing)

	// Total turnover: none of the persisted frames survive.
	if len(kept) == 0 && len(added) > 0 {
		return DefaultOrder(current)
	}

	return append(kept, added...)
}
