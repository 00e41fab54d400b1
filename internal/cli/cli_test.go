package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/framecast/framecast/internal/db"
	"github.com/framecast/framecast/internal/models"
	"github.com/framecast/framecast/internal/scene"
)

func openTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}
	return database
}

func TestPreflightErrorFormat(t *testing.T) {
	err := &PreflightError{
		Message:  "no document matches \"deck\"",
		Hint:     "Names are case sensitive",
		NextStep: "framecast doc list",
	}

	formatted := err.Format()
	if !strings.Contains(formatted, "no document matches") {
		t.Error("Format should include the message")
	}
	if !strings.Contains(formatted, "Hint: Names are case sensitive") {
		t.Error("Format should include the hint")
	}
	if !strings.Contains(formatted, "Next: framecast doc list") {
		t.Error("Format should include the next step")
	}

	bare := (&PreflightError{Message: "boom"}).Format()
	if strings.Contains(bare, "Hint:") || strings.Contains(bare, "Next:") {
		t.Error("Format should omit empty sections")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer

	err := writeTable(&buf, []string{"NAME", "FRAMES"}, [][]string{
		{"deck", "3"},
		{"quarterly-review", "12"},
	})
	if err != nil {
		t.Fatalf("writeTable() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "quarterly-review") {
		t.Errorf("table output missing rows:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("table has %d lines, want 3", len(lines))
	}
}

func TestResolveDocument(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := db.NewDocumentRepository(database)

	doc := &models.Document{
		Name:   "deck",
		Path:   "/canvas/deck.yaml",
		Status: models.DocumentStatusActive,
	}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	byID, err := resolveDocument(ctx, repo, doc.ID)
	if err != nil || byID.ID != doc.ID {
		t.Errorf("resolve by ID = (%v, %v)", byID, err)
	}

	byName, err := resolveDocument(ctx, repo, "deck")
	if err != nil || byName.ID != doc.ID {
		t.Errorf("resolve by name = (%v, %v)", byName, err)
	}

	byPath, err := resolveDocument(ctx, repo, "/canvas/deck.yaml")
	if err != nil || byPath.ID != doc.ID {
		t.Errorf("resolve by path = (%v, %v)", byPath, err)
	}

	_, err = resolveDocument(ctx, repo, "missing")
	var preflight *PreflightError
	if !errors.As(err, &preflight) {
		t.Errorf("resolve miss should return a preflight error, got %v", err)
	}
}

func TestInteractiveFlagForcesNonInteractive(t *testing.T) {
	prev := nonInteractive
	t.Cleanup(func() { nonInteractive = prev })

	nonInteractive = true
	if !IsNonInteractive() {
		t.Error("--non-interactive should force non-interactive mode")
	}
	if IsInteractive() {
		t.Error("IsInteractive must be the negation of IsNonInteractive")
	}
}

func TestEventRows(t *testing.T) {
	when := time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC)
	rows := eventRows([]*models.Event{
		{
			Type:       models.EventTypeSlideAdvanced,
			EntityType: models.EntityTypeSession,
			EntityID:   "doc-1",
			Payload:    json.RawMessage(`{"to_index":1}`),
			Timestamp:  when,
		},
		{
			Type:       models.EventTypeDocumentImported,
			EntityType: models.EntityTypeDocument,
			EntityID:   "doc-1",
			Timestamp:  when,
		},
	})

	if len(rows) != 2 {
		t.Fatalf("eventRows returned %d rows, want 2", len(rows))
	}
	if rows[0][0] != "2026-08-30 10:30:00" {
		t.Errorf("time column = %q", rows[0][0])
	}
	if rows[0][1] != string(models.EventTypeSlideAdvanced) {
		t.Errorf("type column = %q", rows[0][1])
	}
	if rows[0][3] != `{"to_index":1}` {
		t.Errorf("payload column = %q", rows[0][3])
	}
	if rows[1][3] != "" {
		t.Errorf("empty payload column = %q", rows[1][3])
	}
}

func TestOrderForDocument(t *testing.T) {
	ctx := context.Background()
	database := openTestDB(t)
	repo := db.NewDocumentRepository(database)

	doc := &models.Document{Name: "deck", Path: "/canvas/deck.yaml", Status: models.DocumentStatusActive}
	if err := repo.Create(ctx, doc); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	sc := &scene.Scene{
		Name: "deck",
		Shapes: []scene.Shape{
			{ID: "f2", Kind: scene.ShapeKindFrame, X: 0, Y: 100, Width: 10, Height: 10},
			{ID: "f1", Kind: scene.ShapeKindFrame, X: 0, Y: 0, Width: 10, Height: 10},
		},
	}

	// No stored order: derived order by position.
	order, err := orderForDocument(ctx, database, doc, sc)
	if err != nil {
		t.Fatalf("orderForDocument() error = %v", err)
	}
	if got := order.IDs(); len(got) != 2 || got[0] != "f1" {
		t.Errorf("derived order = %v, want [f1 f2]", got)
	}

	// Stored custom order wins.
	custom := models.Sequence{
		{ID: "f2", X: 0, Y: 100, Width: 10, Height: 10},
		{ID: "f1", X: 0, Y: 0, Width: 10, Height: 10},
	}
	if err := db.NewOrderRepository(database).Save(ctx, doc.ID, custom); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	order, err = orderForDocument(ctx, database, doc, sc)
	if err != nil {
		t.Fatalf("orderForDocument() error = %v", err)
	}
	if got := order.IDs(); got[0] != "f2" || got[1] != "f1" {
		t.Errorf("custom order = %v, want [f2 f1]", got)
	}
}
