package models

import "time"

// DocumentStatus identifies the lifecycle state of a document.
type DocumentStatus string

const (
	DocumentStatusActive   DocumentStatus = "active"
	DocumentStatusArchived DocumentStatus = "archived"
)

// Document represents a canvas document registered in the library.
type Document struct {
	// ID is the unique identifier for the document.
	ID string `json:"id"`

	// Name is the human-readable document name.
	Name string `json:"name"`

	// Path is the filesystem path of the scene file.
	Path string `json:"path"`

	// Status indicates whether the document is active or archived.
	Status DocumentStatus `json:"status"`

	// RemoteID is the identifier assigned by the sync backend, if pushed.
	RemoteID string `json:"remote_id,omitempty"`

	// FrameCount is the number of frames at last import/refresh.
	FrameCount int `json:"frame_count"`

	// CreatedAt is when the document was registered.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the document record was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}
