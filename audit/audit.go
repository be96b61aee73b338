// Package audit compares a search index against the live documentation
// site it was built for and reports pages the index is missing or no
// longer serving.
package audit

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/docdex/docdex"
)

// Report is the outcome of auditing an index against a site.
type Report struct {
	// Missing lists docnames present on the site but absent from the index.
	Missing []string

	// Stale lists docnames present in the index but no longer on the site.
	Stale []string

	// Pages is the number of site pages considered.
	Pages int
}

// Clean reports whether the index and the site agree.
func (r *Report) Clean() bool {
	return len(r.Missing) == 0 && len(r.Stale) == 0
}

// Auditor checks search indexes against the sitemap of a documentation
// site.
type Auditor struct {
	Sitemaps docdex.SitemapService
}

// Audit discovers the site's pages and diffs them against the index's
// document table. Page URLs are reduced to docnames relative to the base
// URL before comparison.
func (a *Auditor) Audit(ctx context.Context, baseURL string, idx *docdex.SearchIndex, filter *docdex.URLFilter) (*Report, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	urls, err := a.Sitemaps.DiscoverURLs(ctx, baseURL, filter)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}

	site := make(map[string]bool, len(urls))
	for _, u := range urls {
		name, ok := pageDocname(u, base)
		if !ok {
			continue
		}
		site[name] = true
	}

	indexed := make(map[string]bool, len(idx.Docnames))
	for _, name := range idx.Docnames {
		indexed[name] = true
	}

	report := &Report{Pages: len(site)}
	for name := range site {
		if !indexed[name] {
			report.Missing = append(report.Missing, name)
		}
	}
	for name := range indexed {
		if !site[name] {
			report.Stale = append(report.Stale, name)
		}
	}
	sort.Strings(report.Missing)
	sort.Strings(report.Stale)

	return report, nil
}

// pageDocname reduces a page URL to the docname its document would carry:
// the path relative to the base URL with the extension stripped. Directory
// URLs map to their index page.
func pageDocname(rawURL string, base *url.URL) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != base.Host {
		return "", false
	}

	rel := strings.TrimPrefix(u.Path, strings.TrimSuffix(base.Path, "/"))
	rel = strings.TrimPrefix(rel, "/")
	if rel == "" || strings.HasSuffix(rel, "/") {
		rel += "index"
	}

	return docdex.Docname(rel), true
}
