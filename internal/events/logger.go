// Package events provides helper functions for logging Framecast events.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/framecast/framecast/internal/models"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogDocumentImported records a document.imported event.
func LogDocumentImported(ctx context.Context, repo Repository, documentID, name string, frameCount int) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}

	payload, err := json.Marshal(map[string]any{
		"name":        name,
		"frame_count": frameCount,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal import payload: %w", err)
	}

	event := &models.Event{
		Type:       models.EventTypeDocumentImported,
		EntityType: models.EntityTypeDocument,
		EntityID:   documentID,
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}

// LogDocumentRemoved records a document.removed event.
func LogDocumentRemoved(ctx context.Context, repo Repository, documentID string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}

	event := &models.Event{
		Type:       models.EventTypeDocumentRemoved,
		EntityType: models.EntityTypeDocument,
		EntityID:   documentID,
	}

	return repo.Create(ctx, event)
}

// LogDocumentSynced records a document.pushed or document.pulled event.
func LogDocumentSynced(ctx context.Context, repo Repository, eventType models.EventType, documentID, remoteID string) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}
	if eventType != models.EventTypeDocumentPushed && eventType != models.EventTypeDocumentPulled {
		return fmt.Errorf("invalid sync event type %q", eventType)
	}

	payload, err := json.Marshal(map[string]string{"remote_id": remoteID})
	if err != nil {
		return fmt.Errorf("failed to marshal sync payload: %w", err)
	}

	event := &models.Event{
		Type:       eventType,
		EntityType: models.EntityTypeDocument,
		EntityID:   documentID,
		Payload:    payload,
	}

	return repo.Create(ctx, event)
}
