package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/framecast/framecast/internal/models"
)

// OrderRepository persists custom slide orders per document. It satisfies
// the sequencing engine's OrderStore contract; writes are last-write-wins.
type OrderRepository struct {
	db *DB
}

// NewOrderRepository creates a new OrderRepository.
func NewOrderRepository(db *DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Load returns the persisted custom order for a document, or an empty
// sequence when none has been saved.
func (r *OrderRepository) Load(ctx context.Context, documentID string) (models.Sequence, error) {
	if documentID == "" {
		return nil, fmt.Errorf("document id is required")
	}

	var framesJSON string
	row := r.db.QueryRowContext(ctx, `
		SELECT frames_json FROM presentation_orders WHERE document_id = ?
	`, documentID)
	if err := row.Scan(&framesJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load order for %s: %w", documentID, err)
	}

	var seq models.Sequence
	if err := json.Unmarshal([]byte(framesJSON), &seq); err != nil {
		return nil, fmt.Errorf("decode order for %s: %w", documentID, err)
	}
	return seq, nil
}

// Save stores the custom order for a document, replacing any previous
// value. Saving an empty sequence deletes the custom order so the default
// positional order applies again.
func (r *OrderRepository) Save(ctx context.Context, documentID string, seq models.Sequence) error {
	if documentID == "" {
		return fmt.Errorf("document id is required")
	}

	if len(seq) == 0 {
		if _, err := r.db.ExecContext(ctx, `
			DELETE FROM presentation_orders WHERE document_id = ?
		`, documentID); err != nil {
			return fmt.Errorf("delete order for %s: %w", documentID, err)
		}
		return nil
	}

	framesJSON, err := json.Marshal(seq)
	if err != nil {
		return fmt.Errorf("encode order for %s: %w", documentID, err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO presentation_orders (document_id, frames_json, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(document_id) DO UPDATE SET
			frames_json = excluded.frames_json,
			updated_at = excluded.updated_at
	`, documentID, string(framesJSON), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("save order for %s: %w", documentID, err)
	}
	return nil
}
