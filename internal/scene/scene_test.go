package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleScene = `
name: quarterly review
shapes:
  - id: title
    kind: frame
    x: 0
    y: 0
    width: 400
    height: 300
    label: Title
  - id: chart
    kind: rectangle
    x: 50
    y: 50
    width: 100
    height: 60
  - id: agenda
    kind: frame
    x: 0
    y: 400
    width: 400
    height: 300
  - id: old
    kind: frame
    x: 500
    y: 0
    width: 400
    height: 300
    deleted: true
`

func TestParseExtractsFrames(t *testing.T) {
	parsed, err := Parse([]byte(sampleScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.Name != "quarterly review" {
		t.Errorf("name = %q", parsed.Name)
	}

	frames := parsed.Frames()
	if len(frames) != 2 {
		t.Fatalf("expected 2 frames (deleted and non-frame shapes excluded), got %d", len(frames))
	}
	if frames[0].ID != "title" || frames[1].ID != "agenda" {
		t.Errorf("frames = %v, %v", frames[0].ID, frames[1].ID)
	}
	if frames[0].Width != 400 || frames[0].Height != 300 {
		t.Errorf("frame geometry = %+v", frames[0])
	}
}

func TestFrameLabel(t *testing.T) {
	parsed, err := Parse([]byte(sampleScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := parsed.FrameLabel("title"); got != "Title" {
		t.Errorf("FrameLabel(title) = %q", got)
	}
	if got := parsed.FrameLabel("agenda"); got != "agenda" {
		t.Errorf("FrameLabel(agenda) = %q, want fallback to id", got)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", "shapes: []"},
		{"missing shape id", "name: x\nshapes:\n  - kind: frame"},
		{"missing kind", "name: x\nshapes:\n  - id: a"},
		{"duplicate id", "name: x\nshapes:\n  - id: a\n    kind: frame\n  - id: a\n    kind: frame"},
		{"negative size", "name: x\nshapes:\n  - id: a\n    kind: frame\n    width: -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestBounds(t *testing.T) {
	parsed, err := Parse([]byte(sampleScene))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	minX, minY, maxX, maxY, ok := parsed.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	// The deleted frame at x=500 is excluded.
	if minX != 0 || minY != 0 || maxX != 400 || maxY != 700 {
		t.Errorf("bounds = (%v, %v, %v, %v)", minX, minY, maxX, maxY)
	}
}

func TestBoundsEmptyScene(t *testing.T) {
	s := &Scene{Name: "empty"}
	if _, _, _, _, ok := s.Bounds(); ok {
		t.Error("expected no bounds for empty scene")
	}
}

func TestLoadAndSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.yaml")
	if err := os.WriteFile(path, []byte(sampleScene), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Source != path {
		t.Errorf("source = %q", loaded.Source)
	}

	out := filepath.Join(dir, "copy.yaml")
	if err := Save(out, loaded); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(out)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.Shapes) != len(loaded.Shapes) {
		t.Errorf("shape count changed: %d != %d", len(reloaded.Shapes), len(loaded.Shapes))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, ErrSceneNotFound) {
		t.Errorf("expected ErrSceneNotFound, got %v", err)
	}
}

func TestIsSceneFile(t *testing.T) {
	if !IsSceneFile("deck.yaml") || !IsSceneFile("deck.YML") {
		t.Error("expected yaml extensions to match")
	}
	if IsSceneFile("deck.json") {
		t.Error("json is not a scene file")
	}
}

func TestListSceneFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("name: x\n"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	paths, err := ListSceneFiles(dir)
	if err != nil {
		t.Fatalf("ListSceneFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 scene files, got %v", paths)
	}

	empty, err := ListSceneFiles(filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("ListSceneFiles missing: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty list for missing dir")
	}
}
