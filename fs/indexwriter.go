package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/docdex/docdex"
)

// Ensure IndexWriter implements docdex.IndexWriter at compile time.
var _ docdex.IndexWriter = (*IndexWriter)(nil)

// IndexWriter writes a serialized index with atomic update semantics.
// Save writes to path.tmp; Commit renames it over path, so readers never
// observe a partially written index and a failed build never clobbers an
// existing one.
type IndexWriter struct {
	path  string
	saved bool
}

// NewIndexWriter creates an IndexWriter targeting the given file path.
func NewIndexWriter(path string) *IndexWriter {
	return &IndexWriter{path: path}
}

func (w *IndexWriter) tempPath() string {
	return w.path + ".tmp"
}

// Save writes the serialized index to the temporary location.
func (w *IndexWriter) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(w.tempPath(), data, 0644); err != nil {
		return err
	}
	w.saved = true
	return nil
}

// Commit atomically moves the saved index into place.
func (w *IndexWriter) Commit() error {
	if !w.saved {
		return docdex.Errorf(docdex.ECONFLICT, "no saved index to commit")
	}
	if err := os.Rename(w.tempPath(), w.path); err != nil {
		return err
	}
	w.saved = false
	return nil
}

// Abort discards any pending output.
func (w *IndexWriter) Abort() error {
	w.saved = false
	err := os.Remove(w.tempPath())
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
