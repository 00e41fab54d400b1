package events

import (
	"context"
	"testing"

	"github.com/framecast/framecast/internal/models"
)

type fakeRepo struct {
	last *models.Event
}

func (r *fakeRepo) Create(ctx context.Context, event *models.Event) error {
	r.last = event
	return nil
}

func TestLogDocumentImported(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogDocumentImported(context.Background(), repo, "doc-1", "quarterly review", 7); err != nil {
		t.Fatalf("LogDocumentImported failed: %v", err)
	}

	if repo.last == nil {
		t.Fatal("expected event to be created")
	}
	if repo.last.Type != models.EventTypeDocumentImported {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
	if repo.last.EntityID != "doc-1" {
		t.Fatalf("unexpected entity id: %q", repo.last.EntityID)
	}
}

func TestLogDocumentImportedRequiresRepo(t *testing.T) {
	if err := LogDocumentImported(context.Background(), nil, "doc-1", "x", 0); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestLogDocumentSyncedRejectsWrongType(t *testing.T) {
	repo := &fakeRepo{}

	err := LogDocumentSynced(context.Background(), repo, models.EventTypeError, "doc-1", "remote-1")
	if err == nil {
		t.Fatal("expected error for non-sync event type")
	}
}

func TestLogDocumentSynced(t *testing.T) {
	repo := &fakeRepo{}

	if err := LogDocumentSynced(context.Background(), repo, models.EventTypeDocumentPushed, "doc-1", "remote-1"); err != nil {
		t.Fatalf("LogDocumentSynced failed: %v", err)
	}
	if repo.last.Type != models.EventTypeDocumentPushed {
		t.Fatalf("unexpected event type: %q", repo.last.Type)
	}
}
