package presentation

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/framecast/framecast/internal/models"
)

func frame(id string, x, y float64) models.FrameRef {
	return models.FrameRef{ID: id, X: x, Y: y, Width: 100, Height: 80}
}

func TestDefaultOrderSortsByPositionThenID(t *testing.T) {
	frames := []models.FrameRef{
		frame("f3", 0, 50),
		frame("f2", 100, 0),
		frame("f1", 0, 0),
	}

	got := DefaultOrder(frames)

	want := []string{"f1", "f2", "f3"}
	assertOrder(t, got, want)
}

func TestDefaultOrderTieBreaksByID(t *testing.T) {
	frames := []models.FrameRef{
		frame("b", 10, 10),
		frame("a", 10, 10),
		frame("c", 10, 10),
	}

	got := DefaultOrder(frames)

	assertOrder(t, got, []string{"a", "b", "c"})
}

func TestDefaultOrderEmpty(t *testing.T) {
	got := DefaultOrder(nil)
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %d entries", len(got))
	}
}

func TestDefaultOrderDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 50; trial++ {
		frames := randomFrames(rng, rng.Intn(20))

		first := DefaultOrder(frames)
		second := DefaultOrder(frames)

		if len(first) != len(frames) {
			t.Fatalf("trial %d: output length %d, input length %d", trial, len(first), len(frames))
		}
		if !first.Equal(second) {
			t.Fatalf("trial %d: DefaultOrder is not deterministic", trial)
		}
	}
}

func TestDefaultOrderDoesNotMutateInput(t *testing.T) {
	frames := []models.FrameRef{
		frame("b", 0, 10),
		frame("a", 0, 0),
	}

	DefaultOrder(frames)

	if frames[0].ID != "b" {
		t.Error("input slice was reordered")
	}
}

func TestReconcileEmptyPersistedFallsBackToDefault(t *testing.T) {
	frames := []models.FrameRef{
		frame("f2", 100, 0),
		frame("f1", 0, 0),
	}

	got := Reconcile(nil, frames)

	if !got.Equal(DefaultOrder(frames)) {
		t.Errorf("Reconcile(nil, s) = %v, want default order", got.IDs())
	}
}

func TestReconcilePreservesSurvivorOrderAndDropsDeleted(t *testing.T) {
	f1 := frame("f1", 0, 0)
	f2 := frame("f2", 100, 0)
	f3 := frame("f3", 0, 50)

	persisted := models.Sequence{f3, f1, f2}
	current := []models.FrameRef{f1, f3} // f2 deleted

	got := Reconcile(persisted, current)

	assertOrder(t, got, []string{"f3", "f1"})
}

func TestReconcileAppendsNewFramesInDefaultOrder(t *testing.T) {
	f1 := frame("f1", 0, 0)
	f2 := frame("f2", 100, 0)
	persisted := models.Sequence{f2, f1}

	// Two new frames, positioned so default order between them is n1, n2.
	n1 := frame("n1", 0, 10)
	n2 := frame("n2", 0, 20)
	current := []models.FrameRef{n2, f1, n1, f2}

	got := Reconcile(persisted, current)

	assertOrder(t, got, []string{"f2", "f1", "n1", "n2"})
}

func TestReconcileTotalTurnoverFallsBack(t *testing.T) {
	persisted := models.Sequence{frame("old1", 0, 0), frame("old2", 0, 10)}
	current := []models.FrameRef{frame("new2", 0, 20), frame("new1", 0, 0)}

	got := Reconcile(persisted, current)

	if !got.Equal(DefaultOrder(current)) {
		t.Errorf("disjoint Reconcile = %v, want default order", got.IDs())
	}
}

func TestReconcileEmptyCurrent(t *testing.T) {
	persisted := models.Sequence{frame("f1", 0, 0)}

	got := Reconcile(persisted, nil)

	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got.IDs())
	}
}

func TestReconcileTakesGeometryFromLiveSet(t *testing.T) {
	persisted := models.Sequence{frame("f1", 0, 0)}
	current := []models.FrameRef{frame("f1", 500, 700)}

	got := Reconcile(persisted, current)

	if len(got) != 1 || got[0].X != 500 || got[0].Y != 700 {
		t.Errorf("expected live geometry, got %+v", got)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 100; trial++ {
		current := randomFrames(rng, 1+rng.Intn(10))

		// Persisted order shares a random subset with the current set,
		// plus some frames that no longer exist.
		var persisted models.Sequence
		for _, f := range current {
			if rng.Intn(2) == 0 {
				persisted = append(persisted, f)
			}
		}
		for i := 0; i < rng.Intn(4); i++ {
			persisted = append(persisted, frame(fmt.Sprintf("gone%d", i), 0, 0))
		}
		rng.Shuffle(len(persisted), func(i, j int) {
			persisted[i], persisted[j] = persisted[j], persisted[i]
		})

		once := Reconcile(persisted, current)
		twice := Reconcile(once, current)

		if !twice.Equal(once) {
			t.Fatalf("trial %d: not idempotent: once=%v twice=%v", trial, once.IDs(), twice.IDs())
		}
		if len(once) != len(current) {
			t.Fatalf("trial %d: reconciled length %d, frame set size %d", trial, len(once), len(current))
		}
	}
}

func randomFrames(rng *rand.Rand, n int) []models.FrameRef {
	frames := make([]models.FrameRef, n)
	for i := range frames {
		frames[i] = frame(fmt.Sprintf("f%d", i), float64(rng.Intn(5)*100), float64(rng.Intn(5)*100))
	}
	return frames
}

func assertOrder(t *testing.T, got models.Sequence, want []string) {
	t.Helper()
	ids := got.IDs()
	if len(ids) != len(want) {
		t.Fatalf("got order %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got order %v, want %v", ids, want)
		}
	}
}
