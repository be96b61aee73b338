// Package fs provides filesystem-based scanning and storage for
// documentation sources and generated indexes.
package fs

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/bloom"
)

// DefaultScanConcurrency bounds parallel file reads during a scan.
const DefaultScanConcurrency = 8

// Scanner walks a documentation source tree and loads its markdown pages
// as documents. Hidden and underscore-prefixed directories (build output,
// templates) are skipped, and pages with identical content are
// deduplicated.
type Scanner struct {
	Concurrency int
}

// Scan loads all markdown pages under dir. Document positions follow the
// sorted relative path order, so repeated scans of an unchanged tree are
// deterministic.
func (s *Scanner) Scan(ctx context.Context, dir string) ([]*docdex.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, docdex.Errorf(docdex.ENOTFOUND, "source directory %q does not exist", dir)
		}
		return nil, fmt.Errorf("stat %q: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, docdex.Errorf(docdex.EINVALID, "source %q is not a directory", dir)
	}

	paths, err := collectMarkdownPaths(dir)
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultScanConcurrency
	}

	docs := make([]*docdex.Document, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, relPath := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(relPath)))
			if err != nil {
				return fmt.Errorf("reading %q: %w", relPath, err)
			}

			markdown := string(content)
			title := docdex.ExtractTitle(markdown)
			if title == "" {
				title = strings.TrimSuffix(filepath.Base(relPath), filepath.Ext(relPath))
			}

			docs[i] = &docdex.Document{
				FilePath: relPath,
				Title:    title,
				Content:  markdown,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Drop pages whose content duplicates an earlier page (copied files,
	// symlinked trees). A bloom false positive drops a unique page, which
	// is acceptable at documentation scale.
	seen := bloom.NewFilter(uint(len(docs))+1, 0.001)
	result := make([]*docdex.Document, 0, len(docs))
	for _, doc := range docs {
		if seen.TestAndAdd(hashContent(doc.Content)) {
			continue
		}
		doc.Position = len(result)
		result = append(result, doc)
	}

	return result, nil
}

func collectMarkdownPaths(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if p != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %q: %w", dir, err)
	}
	return paths, nil
}

func hashContent(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}
