package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of docdex.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *docdex.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docdex.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}

var _ docdex.IndexWriter = (*IndexWriter)(nil)

// IndexWriter is a mock implementation of docdex.IndexWriter.
type IndexWriter struct {
	SaveFn   func(ctx context.Context, data []byte) error
	CommitFn func() error
	AbortFn  func() error
}

func (w *IndexWriter) Save(ctx context.Context, data []byte) error {
	return w.SaveFn(ctx, data)
}

func (w *IndexWriter) Commit() error {
	return w.CommitFn()
}

func (w *IndexWriter) Abort() error {
	return w.AbortFn()
}
