package models

import "testing"

func TestSequenceLookups(t *testing.T) {
	seq := Sequence{
		{ID: "f1", X: 0, Y: 0, Width: 10, Height: 10},
		{ID: "f2", X: 0, Y: 20, Width: 10, Height: 10},
	}

	if got := seq.IndexOf("f2"); got != 1 {
		t.Errorf("IndexOf(f2) = %d, want 1", got)
	}
	if got := seq.IndexOf("missing"); got != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", got)
	}
	if !seq.Contains("f1") || seq.Contains("f3") {
		t.Error("Contains should report membership by ID")
	}
	if ids := seq.IDs(); len(ids) != 2 || ids[0] != "f1" || ids[1] != "f2" {
		t.Errorf("IDs() = %v", ids)
	}
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	seq := Sequence{{ID: "f1"}, {ID: "f2"}}

	clone := seq.Clone()
	clone[0].ID = "changed"

	if seq[0].ID != "f1" {
		t.Error("mutating a clone must not affect the original")
	}
	if !seq.Equal(Sequence{{ID: "f1"}, {ID: "f2"}}) {
		t.Error("Equal should compare by ID and geometry")
	}
	if seq.Equal(clone) {
		t.Error("Equal should detect the changed ID")
	}

	if Sequence(nil).Clone() != nil {
		t.Error("cloning a nil sequence should stay nil")
	}
}
