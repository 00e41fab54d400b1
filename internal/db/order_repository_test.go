package db

import (
	"context"
	"testing"

	"github.com/framecast/framecast/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := OpenInMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if _, err := database.MigrateUp(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return database
}

func testSequence() models.Sequence {
	return models.Sequence{
		{ID: "f3", X: 0, Y: 50, Width: 100, Height: 80},
		{ID: "f1", X: 0, Y: 0, Width: 100, Height: 80},
		{ID: "f2", X: 100, Y: 0, Width: 100, Height: 80},
	}
}

func TestOrderRepositoryLoadEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	seq, err := repo.Load(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("expected empty sequence, got %v", seq.IDs())
	}
}

func TestOrderRepositorySaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	if err := repo.Save(ctx, "doc-1", testSequence()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	seq, err := repo.Load(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !seq.Equal(testSequence()) {
		t.Errorf("loaded %v, want %v", seq.IDs(), testSequence().IDs())
	}
}

func TestOrderRepositorySaveIsLastWriteWins(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	first := testSequence()
	if err := repo.Save(ctx, "doc-1", first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := models.Sequence{first[1], first[0], first[2]}
	if err := repo.Save(ctx, "doc-1", second); err != nil {
		t.Fatalf("Save: %v", err)
	}

	seq, err := repo.Load(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !seq.Equal(second) {
		t.Errorf("loaded %v, want %v", seq.IDs(), second.IDs())
	}
}

func TestOrderRepositorySaveEmptyDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	if err := repo.Save(ctx, "doc-1", testSequence()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, "doc-1", nil); err != nil {
		t.Fatalf("Save empty: %v", err)
	}

	seq, err := repo.Load(ctx, "doc-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("expected order cleared, got %v", seq.IDs())
	}
}

func TestOrderRepositoryKeysPerDocument(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	if err := repo.Save(ctx, "doc-1", testSequence()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	seq, err := repo.Load(ctx, "doc-2")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(seq) != 0 {
		t.Errorf("doc-2 should have no order, got %v", seq.IDs())
	}
}

func TestOrderRepositoryRequiresDocumentID(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(openTestDB(t))

	if _, err := repo.Load(ctx, ""); err == nil {
		t.Error("expected error for empty document id on Load")
	}
	if err := repo.Save(ctx, "", testSequence()); err == nil {
		t.Error("expected error for empty document id on Save")
	}
}
