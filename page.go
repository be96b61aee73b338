package docdex

import "context"

// Page represents one page of a built documentation site before it is
// stored as a Document.
type Page struct {
	URL      string
	Title    string
	Headings []string
	Content  string // Markdown
}

// Fetcher retrieves raw HTML for a URL.
type Fetcher interface {
	// Fetch retrieves the HTML content from the given URL.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases fetcher resources.
	Close() error
}

// PageExtractor pulls the title, headings, and main content out of a
// documentation page's HTML, discarding theme chrome (navigation,
// sidebars, footers).
type PageExtractor interface {
	// Extract returns the page title, section headings, and the HTML of
	// the main content area.
	Extract(html string) (title string, headings []string, contentHTML string, err error)
}

// Converter transforms HTML content into Markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// DomainLimiter provides per-domain rate limiting for site fetches.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
