package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/framecast/framecast/internal/models"
)

// Document repository errors.
var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrDocumentExists   = errors.New("document already registered")
	ErrInvalidDocument  = errors.New("invalid document")
)

// DocumentRepository handles document library persistence.
type DocumentRepository struct {
	db *DB
}

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(db *DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create registers a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if strings.TrimSpace(doc.Name) == "" || strings.TrimSpace(doc.Path) == "" {
		return ErrInvalidDocument
	}

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Status == "" {
		doc.Status = models.DocumentStatusActive
	}
	now := time.Now().UTC()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, name, path, status, remote_id, frame_count, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ID,
		doc.Name,
		doc.Path,
		string(doc.Status),
		nullString(doc.RemoteID),
		doc.FrameCount,
		doc.CreatedAt.Format(time.RFC3339),
		doc.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDocumentExists
		}
		return fmt.Errorf("failed to insert document: %w", err)
	}

	return nil
}

// Get retrieves a document by ID.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, path, status, remote_id, frame_count, created_at, updated_at
		FROM documents WHERE id = ?
	`, id)

	return r.scanDocument(row)
}

// GetByName retrieves a document by name. Names are not unique; the most
// recently updated match wins.
func (r *DocumentRepository) GetByName(ctx context.Context, name string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, path, status, remote_id, frame_count, created_at, updated_at
		FROM documents WHERE name = ?
		ORDER BY updated_at DESC LIMIT 1
	`, name)

	return r.scanDocument(row)
}

// GetByPath retrieves a document by its scene file path.
func (r *DocumentRepository) GetByPath(ctx context.Context, path string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, path, status, remote_id, frame_count, created_at, updated_at
		FROM documents WHERE path = ?
	`, path)

	return r.scanDocument(row)
}

// List retrieves documents, optionally filtered by status.
func (r *DocumentRepository) List(ctx context.Context, status models.DocumentStatus) ([]*models.Document, error) {
	query := `SELECT id, name, path, status, remote_id, frame_count, created_at, updated_at
		FROM documents`
	args := []any{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []*models.Document
	for rows.Next() {
		doc, err := r.scanDocumentFromRows(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return docs, nil
}

// Update persists changes to an existing document.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		return ErrInvalidDocument
	}
	doc.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE documents
		SET name = ?, path = ?, status = ?, remote_id = ?, frame_count = ?, updated_at = ?
		WHERE id = ?
	`,
		doc.Name,
		doc.Path,
		string(doc.Status),
		nullString(doc.RemoteID),
		doc.FrameCount,
		doc.UpdatedAt.Format(time.RFC3339),
		doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// Delete removes a document and its persisted order.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin delete: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrDocumentNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM presentation_orders WHERE document_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete document order: %w", err)
	}

	return tx.Commit()
}

func (r *DocumentRepository) scanDocument(row *sql.Row) (*models.Document, error) {
	var doc models.Document
	var status, createdAt, updatedAt string
	var remoteID sql.NullString

	err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Path,
		&status,
		&remoteID,
		&doc.FrameCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.Status = models.DocumentStatus(status)
	doc.RemoteID = remoteID.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		doc.UpdatedAt = t
	}

	return &doc, nil
}

func (r *DocumentRepository) scanDocumentFromRows(rows *sql.Rows) (*models.Document, error) {
	var doc models.Document
	var status, createdAt, updatedAt string
	var remoteID sql.NullString

	if err := rows.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Path,
		&status,
		&remoteID,
		&doc.FrameCount,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.Status = models.DocumentStatus(status)
	doc.RemoteID = remoteID.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		doc.UpdatedAt = t
	}

	return &doc, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
