package docdex

import (
	"context"
	"time"
)

// Document represents a scanned documentation page.
type Document struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"projectId"`
	FilePath    string    `json:"filePath"`
	SourceURL   string    `json:"sourceUrl"`
	Title       string    `json:"title"`
	Content     string    `json:"content"` // Markdown
	ContentHash string    `json:"contentHash"`
	Position    int       `json:"position"`
	ScannedAt   time.Time `json:"scannedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.ProjectID == "" {
		return Errorf(EINVALID, "document project ID required")
	}
	if d.FilePath == "" && d.SourceURL == "" {
		return Errorf(EINVALID, "document file path or source URL required")
	}
	return nil
}

// Docname returns the document's identifier within a search index: the
// file path with its extension stripped and separators normalized to
// forward slashes, e.g. "api/discovery.md" becomes "api/discovery".
func (d *Document) Docname() string {
	return Docname(d.FilePath)
}

// DocumentService represents a service for managing documents.
type DocumentService interface {
	// CreateDocument creates a new document.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// UpdateDocument updates an existing document.
	// Returns ENOTFOUND if document does not exist.
	UpdateDocument(ctx context.Context, id string, upd DocumentUpdate) (*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error

	// DeleteDocumentsByProject removes all documents for a project.
	DeleteDocumentsByProject(ctx context.Context, projectID string) error
}

// SortOrder represents the sort order for document queries.
type SortOrder string

// SortOrder constants for DocumentFilter.
const (
	SortByScannedAt SortOrder = "scanned_at"
	SortByPosition  SortOrder = "position"
)

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID        *string `json:"id"`
	ProjectID *string `json:"projectId"`
	FilePath  *string `json:"filePath"`
	SourceURL *string `json:"sourceUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// DocumentUpdate represents fields that can be updated on a document.
type DocumentUpdate struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	ContentHash *string `json:"contentHash"`
	Position    *int    `json:"position"`
}
