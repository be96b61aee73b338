package docdex

import (
	"context"
	"path"
	"path/filepath"
	"strings"
)

// SearchIndex is the precomputed structure consumed by a documentation
// site's client-side search: a document table (docnames, filenames,
// titles) plus posting lists mapping analyzed terms to the documents that
// contain them. The layout mirrors the payload Sphinx ships as
// searchindex.js.
type SearchIndex struct {
	// Docnames lists document identifiers (source paths without
	// extension). Docnames, Filenames and Titles are parallel slices;
	// postings refer to positions in them.
	Docnames  []string `json:"docnames"`
	Filenames []string `json:"filenames"`
	Titles    []string `json:"titles"`

	// Terms maps an analyzed body term to the documents containing it.
	// Postings are sorted ascending and deduplicated.
	Terms map[string][]int `json:"terms"`

	// TitleTerms maps terms appearing in page or section titles to their
	// documents. Title hits rank above body hits at query time.
	TitleTerms map[string][]int `json:"titleterms"`

	// Objects is the optional API object inventory, keyed by domain then
	// fully qualified name.
	Objects map[string]map[string]ObjectEntry `json:"objects,omitempty"`

	// ObjectTypes names the object types ObjectEntry.Type refers to,
	// e.g. "py:class".
	ObjectTypes []string `json:"objtypes,omitempty"`

	// ObjectNames carries the display form of each object type, parallel
	// to ObjectTypes: domain, type, and human-readable label.
	ObjectNames [][]string `json:"objnames,omitempty"`

	// EnvVersion identifies the generator environment that produced the
	// index. Opaque to this tool.
	EnvVersion string `json:"envversion,omitempty"`
}

// ObjectEntry locates one API object in the document table.
type ObjectEntry struct {
	Doc      int    `json:"doc"`
	Type     int    `json:"type"`
	Priority int    `json:"priority"`
	Anchor   string `json:"anchor"`
}

// Validate checks structural consistency of the index: parallel slice
// lengths, unique non-empty docnames, lowercase terms, and postings that
// are in range, sorted, and deduplicated.
func (idx *SearchIndex) Validate() error {
	n := len(idx.Docnames)
	if len(idx.Filenames) != n {
		return Errorf(EINVALID, "filenames length %d does not match docnames length %d", len(idx.Filenames), n)
	}
	if len(idx.Titles) != n {
		return Errorf(EINVALID, "titles length %d does not match docnames length %d", len(idx.Titles), n)
	}

	seen := make(map[string]bool, n)
	for i, name := range idx.Docnames {
		if name == "" {
			return Errorf(EINVALID, "docname %d is empty", i)
		}
		if seen[name] {
			return Errorf(EINVALID, "duplicate docname %q", name)
		}
		seen[name] = true
	}

	if err := validatePostings("terms", idx.Terms, n); err != nil {
		return err
	}
	if err := validatePostings("titleterms", idx.TitleTerms, n); err != nil {
		return err
	}

	if len(idx.ObjectNames) != 0 && len(idx.ObjectNames) != len(idx.ObjectTypes) {
		return Errorf(EINVALID, "objnames length %d does not match objtypes length %d", len(idx.ObjectNames), len(idx.ObjectTypes))
	}

	for domain, objects := range idx.Objects {
		for name, obj := range objects {
			if obj.Doc < 0 || obj.Doc >= n {
				return Errorf(EINVALID, "object %s:%s references document %d of %d", domain, name, obj.Doc, n)
			}
			if obj.Type < 0 || obj.Type >= len(idx.ObjectTypes) {
				return Errorf(EINVALID, "object %s:%s references unknown type %d", domain, name, obj.Type)
			}
		}
	}

	return nil
}

func validatePostings(field string, postings map[string][]int, n int) error {
	for term, docs := range postings {
		if term == "" {
			return Errorf(EINVALID, "%s contains an empty term", field)
		}
		if term != strings.ToLower(term) {
			return Errorf(EINVALID, "%s term %q is not lowercase", field, term)
		}
		if len(docs) == 0 {
			return Errorf(EINVALID, "%s term %q has no postings", field, term)
		}
		prev := -1
		for _, doc := range docs {
			if doc < 0 || doc >= n {
				return Errorf(EINVALID, "%s term %q references document %d of %d", field, term, doc, n)
			}
			if doc == prev {
				return Errorf(EINVALID, "%s term %q has duplicate posting %d", field, term, doc)
			}
			if doc < prev {
				return Errorf(EINVALID, "%s term %q postings are not sorted", field, term)
			}
			prev = doc
		}
	}
	return nil
}

// DocumentCount returns the number of documents in the index.
func (idx *SearchIndex) DocumentCount() int {
	return len(idx.Docnames)
}

// Docname converts a source file path to its index identifier: the path
// with separators normalized to forward slashes and the extension removed.
func Docname(filePath string) string {
	p := filepath.ToSlash(filePath)
	p = strings.TrimPrefix(p, "./")
	ext := path.Ext(p)
	return strings.TrimSuffix(p, ext)
}

// Analyzer turns text into index terms. The same analyzer must be used at
// build and query time so stemmed terms align.
type Analyzer interface {
	// Tokens returns the analyzed terms of the text, in order of
	// appearance. Stop words are dropped.
	Tokens(text string) []string
}

// IndexWriter persists a serialized index with atomic semantics.
// Save writes to a temporary location; Commit makes the write permanent;
// Abort discards pending output.
type IndexWriter interface {
	Save(ctx context.Context, data []byte) error
	Commit() error
	Abort() error
}
