package mock

import (
	"context"

	"github.com/docdex/docdex"
)

var _ docdex.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docdex.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ docdex.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of docdex.PageExtractor.
type PageExtractor struct {
	ExtractFn func(html string) (string, []string, string, error)
}

func (e *PageExtractor) Extract(html string) (string, []string, string, error) {
	return e.ExtractFn(html)
}

var _ docdex.Converter = (*Converter)(nil)

// Converter is a mock implementation of docdex.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ docdex.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of docdex.Analyzer.
type Analyzer struct {
	TokensFn func(text string) []string
}

func (a *Analyzer) Tokens(text string) []string {
	return a.TokensFn(text)
}
