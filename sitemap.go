package docdex

import "context"

// SitemapService enumerates the pages of a built documentation site. It
// is the discovery half of site-backed projects: every URL it returns is
// a candidate document, later reduced to a docname relative to the
// project's base URL.
type SitemapService interface {
	// DiscoverURLs returns the page URLs listed in the site's sitemap,
	// checking robots.txt Sitemap directives before the conventional
	// /sitemap.xml location and resolving sitemap indexes recursively.
	// A nil filter returns every page under the base URL.
	DiscoverURLs(ctx context.Context, baseURL string, filter *URLFilter) ([]string, error)
}
