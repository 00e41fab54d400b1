package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// EventType categorizes events in the presentation event log.
type EventType string

const (
	// Session events
	EventTypeSessionStarted EventType = "session.started"
	EventTypeSessionStopped EventType = "session.stopped"

	// Slide events
	EventTypeSlideAdvanced EventType = "slide.advanced"
	EventTypeSlideRewound  EventType = "slide.rewound"

	// Order events
	EventTypeOrderChanged EventType = "order.changed"
	EventTypeOrderReset   EventType = "order.reset"

	// Document events
	EventTypeDocumentImported EventType = "document.imported"
	EventTypeDocumentRemoved  EventType = "document.removed"
	EventTypeDocumentPushed   EventType = "document.pushed"
	EventTypeDocumentPulled   EventType = "document.pulled"

	// System events
	EventTypeError   EventType = "error"
	EventTypeWarning EventType = "warning"
)

// EntityType identifies the type of entity an event relates to.
type EntityType string

const (
	EntityTypeDocument EntityType = "document"
	EntityTypeSession  EntityType = "session"
	EntityTypeSystem   EntityType = "system"
)

// Event represents an append-only log entry.
type Event struct {
	// ID is the unique identifier for the event.
	ID string `json:"id"`

	// Timestamp is when the event occurred.
	Timestamp time.Time `json:"timestamp"`

	// Type categorizes the event.
	Type EventType `json:"type"`

	// EntityType identifies what kind of entity this event relates to.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the ID of the related entity.
	EntityID string `json:"entity_id"`

	// Payload contains event-specific data.
	Payload json.RawMessage `json:"payload,omitempty"`

	// Metadata contains additional context.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Validate checks if the event is valid.
func (e *Event) Validate() error {
	if strings.TrimSpace(string(e.Type)) == "" {
		return fmt.Errorf("event type is required")
	}
	if strings.TrimSpace(string(e.EntityType)) == "" {
		return fmt.Errorf("event entity_type is required")
	}
	if strings.TrimSpace(e.EntityID) == "" {
		return fmt.Errorf("event entity_id is required")
	}
	return nil
}

// SessionStartedPayload is the payload for session.started events.
type SessionStartedPayload struct {
	FrameCount  int    `json:"frame_count"`
	FirstFrame  string `json:"first_frame"`
	CustomOrder bool   `json:"custom_order"`
}

// SlideChangedPayload is the payload for slide.advanced and slide.rewound events.
type SlideChangedPayload struct {
	FromIndex int    `json:"from_index"`
	ToIndex   int    `json:"to_index"`
	FrameID   string `json:"frame_id"`
}

// OrderChangedPayload is the payload for order.changed events.
type OrderChangedPayload struct {
	FromIndex int      `json:"from_index"`
	ToIndex   int      `json:"to_index"`
	Order     []string `json:"order"`
}
