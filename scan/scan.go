// Package scan provides site scanning orchestration. It coordinates
// sitemap discovery, fetching, content extraction, and storage of
// documentation pages for projects backed by a built site.
package scan

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex"
)

// DefaultConcurrency bounds parallel page fetches during a site scan.
const DefaultConcurrency = 10

// SiteScanner loads the pages of a built documentation site and saves
// them as documents.
type SiteScanner struct {
	Sitemaps    docdex.SitemapService
	Fetcher     docdex.Fetcher
	Extractor   docdex.PageExtractor
	Converter   docdex.Converter
	Documents   docdex.DocumentService
	Concurrency int
	RetryDelays []time.Duration

	// Log, if set, receives retry messages from page fetches.
	Log LogFunc
}

// Result holds the outcome of a site scan.
type Result struct {
	Saved  int
	Failed int
	Bytes  int
}

// ProgressEvent reports progress during a site scan.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scan progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single URL.
type pageResult struct {
	position int
	url      string
	filePath string
	title    string
	markdown string
	hash     string
	err      error
}

// ScanSite scans all pages of the project's documentation site and saves
// them as documents. The progress callback, if provided, receives events
// as the scan proceeds.
func (s *SiteScanner) ScanSite(ctx context.Context, project *docdex.Project, filter *docdex.URLFilter, progress ProgressFunc) (*Result, error) {
	base, err := url.Parse(project.SourceURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid source URL %q: %v", project.SourceURL, err)
	}

	urls, err := s.Sitemaps.DiscoverURLs(ctx, project.SourceURL, filter)
	if err != nil {
		return nil, err
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan pageResult, len(urls))

	var completed atomic.Int64
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, pageURL := range urls {
			i, pageURL := i, pageURL
			g.Go(func() error {
				resultCh <- s.processURL(gctx, i, pageURL, base)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]pageResult, len(urls))
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if result.err != nil {
			failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: int(completed.Load()),
					Total:     total,
					URL:       result.url,
					Error:     result.err,
				})
			}
			continue
		}
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	var saved, bytes int
	for _, result := range results {
		if result.err != nil {
			continue
		}

		doc := &docdex.Document{
			ProjectID:   project.ID,
			FilePath:    result.filePath,
			SourceURL:   result.url,
			Title:       result.title,
			Content:     result.markdown,
			ContentHash: result.hash,
			Position:    result.position,
		}
		if err := s.Documents.CreateDocument(ctx, doc); err != nil {
			failed++
			continue
		}

		saved++
		bytes += len(result.markdown)
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return &Result{Saved: saved, Failed: failed, Bytes: bytes}, nil
}

// processURL fetches and processes a single page.
func (s *SiteScanner) processURL(ctx context.Context, position int, pageURL string, base *url.URL) pageResult {
	result := pageResult{
		position: position,
		url:      pageURL,
		filePath: pagePath(pageURL, base),
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, pageURL, s.Fetcher.Fetch, s.Log, delays)
	if err != nil {
		result.err = err
		return result
	}

	title, _, contentHTML, err := s.Extractor.Extract(html)
	if err != nil {
		result.err = err
		return result
	}

	markdown, err := s.Converter.Convert(contentHTML)
	if err != nil {
		result.err = err
		return result
	}

	result.title = title
	result.markdown = markdown
	result.hash = computeHash(markdown)

	return result
}

// pagePath derives a document file path from a page URL: the path
// relative to the base URL. Directory URLs map to their index page.
func pagePath(pageURL string, base *url.URL) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	rel := strings.TrimPrefix(u.Path, strings.TrimSuffix(base.Path, "/"))
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index.html"
	}
	return rel
}

func computeHash(content string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(content))
	return hex.EncodeToString(b[:])
}
