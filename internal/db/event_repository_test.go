package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/framecast/framecast/internal/models"
)

func TestEventRepositoryCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	payload, _ := json.Marshal(models.SlideChangedPayload{FromIndex: 0, ToIndex: 1, FrameID: "f2"})
	event := &models.Event{
		Type:       models.EventTypeSlideAdvanced,
		EntityType: models.EntityTypeSession,
		EntityID:   "doc-1",
		Payload:    payload,
		Metadata:   map[string]string{"source": "tui"},
	}

	if err := repo.Create(ctx, event); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if event.ID == "" {
		t.Error("expected ID to be set")
	}
	if event.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	retrieved, err := repo.Get(ctx, event.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if retrieved.Type != models.EventTypeSlideAdvanced || retrieved.EntityID != "doc-1" {
		t.Errorf("retrieved %+v", retrieved)
	}
	if retrieved.Metadata["source"] != "tui" {
		t.Errorf("metadata not round-tripped: %v", retrieved.Metadata)
	}

	var decoded models.SlideChangedPayload
	if err := json.Unmarshal(retrieved.Payload, &decoded); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded.FrameID != "f2" {
		t.Errorf("payload frame = %s, want f2", decoded.FrameID)
	}
}

func TestEventRepositoryCreateInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	err := repo.Create(ctx, &models.Event{Type: "", EntityType: models.EntityTypeSession, EntityID: "x"})
	if !errors.Is(err, ErrInvalidEvent) {
		t.Errorf("expected ErrInvalidEvent, got %v", err)
	}
}

func TestEventRepositoryGetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Errorf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventRepositoryListByEntity(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i, eventType := range []models.EventType{
		models.EventTypeSessionStarted,
		models.EventTypeSlideAdvanced,
		models.EventTypeSessionStopped,
	} {
		event := &models.Event{
			Type:       eventType,
			EntityType: models.EntityTypeSession,
			EntityID:   "doc-1",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create %s: %v", eventType, err)
		}
	}
	other := &models.Event{
		Type:       models.EventTypeDocumentImported,
		EntityType: models.EntityTypeDocument,
		EntityID:   "doc-2",
	}
	if err := repo.Create(ctx, other); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	events, err := repo.ListByEntity(ctx, models.EntityTypeSession, "doc-1", 0)
	if err != nil {
		t.Fatalf("ListByEntity: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[0].Type != models.EventTypeSessionStarted || events[2].Type != models.EventTypeSessionStopped {
		t.Errorf("events out of order: %v %v", events[0].Type, events[2].Type)
	}
}

func TestEventRepositoryQueryFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(openTestDB(t))

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		event := &models.Event{
			Type:       models.EventTypeSlideAdvanced,
			EntityType: models.EntityTypeSession,
			EntityID:   "doc-1",
			Timestamp:  base.Add(time.Duration(i) * time.Hour),
		}
		if err := repo.Create(ctx, event); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	since := base.Add(90 * time.Minute)
	until := base.Add(4 * time.Hour)
	events, err := repo.Query(ctx, EventQuery{Since: &since, Until: &until})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events in window, got %d", len(events))
	}

	limited, err := repo.Query(ctx, EventQuery{Limit: 3})
	if err != nil {
		t.Fatalf("Query limited: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 events with limit, got %d", len(limited))
	}
}
