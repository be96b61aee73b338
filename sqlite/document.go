package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/docdex/docdex"
)

// Compile-time interface verification.
var _ docdex.DocumentService = (*DocumentService)(nil)

// DocumentService implements docdex.DocumentService using SQLite.
type DocumentService struct {
	db *DB
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}

// CreateDocument creates a new document.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *docdex.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.New().String()
	doc.ScannedAt = time.Now().UTC()
	doc.ContentHash = hashContent(doc.Content)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, project_id, file_path, source_url, title, content, content_hash, position, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.ProjectID, doc.FilePath, doc.SourceURL, doc.Title, doc.Content, doc.ContentHash,
		doc.Position, doc.ScannedAt.Format(time.RFC3339))

	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*docdex.Document, error) {
	var doc docdex.Document
	var scannedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, file_path, source_url, title, content, content_hash, position, scanned_at
		FROM documents
		WHERE id = ?
	`, id).Scan(&doc.ID, &doc.ProjectID, &doc.FilePath, &doc.SourceURL, &doc.Title,
		&doc.Content, &doc.ContentHash, &doc.Position, &scannedAt)

	if err == sql.ErrNoRows {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "document not found")
	}
	if err != nil {
		return nil, err
	}

	if doc.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at"); err != nil {
		return nil, err
	}

	return &doc, nil
}

// FindDocuments retrieves documents matching the filter.
func (s *DocumentService) FindDocuments(ctx context.Context, filter docdex.DocumentFilter) ([]*docdex.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, project_id, file_path, source_url, title, content, content_hash, position, scanned_at FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.ProjectID != nil {
		query.WriteString(" AND project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.FilePath != nil {
		query.WriteString(" AND file_path = ?")
		args = append(args, *filter.FilePath)
	}
	if filter.SourceURL != nil {
		query.WriteString(" AND source_url = ?")
		args = append(args, *filter.SourceURL)
	}

	switch filter.SortBy {
	case docdex.SortByPosition:
		query.WriteString(" ORDER BY position ASC")
	default:
		query.WriteString(" ORDER BY scanned_at DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*docdex.Document
	for rows.Next() {
		var doc docdex.Document
		var scannedAt string

		if err := rows.Scan(&doc.ID, &doc.ProjectID, &doc.FilePath, &doc.SourceURL, &doc.Title,
			&doc.Content, &doc.ContentHash, &doc.Position, &scannedAt); err != nil {
			return nil, err
		}

		if doc.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at"); err != nil {
			return nil, err
		}

		docs = append(docs, &doc)
	}

	return docs, rows.Err()
}

// UpdateDocument updates an existing document.
func (s *DocumentService) UpdateDocument(ctx context.Context, id string, upd docdex.DocumentUpdate) (*docdex.Document, error) {
	doc, err := s.FindDocumentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	if upd.Content != nil {
		doc.Content = *upd.Content
		doc.ContentHash = hashContent(doc.Content)
	} else if upd.ContentHash != nil {
		// Only allow explicit hash override if content wasn't updated
		doc.ContentHash = *upd.ContentHash
	}
	if upd.Position != nil {
		doc.Position = *upd.Position
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE documents
		SET title = ?, content = ?, content_hash = ?, position = ?
		WHERE id = ?
	`, doc.Title, doc.Content, doc.ContentHash, doc.Position, id)

	if err != nil {
		return nil, err
	}

	return doc, nil
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return docdex.Errorf(docdex.ENOTFOUND, "document not found")
	}

	return nil
}

// DeleteDocumentsByProject removes all documents for a project.
func (s *DocumentService) DeleteDocumentsByProject(ctx context.Context, projectID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE project_id = ?", projectID)
	return err
}
