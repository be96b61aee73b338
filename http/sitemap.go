package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/docdex/docdex"
)

// DefaultSitemapTimeout is the default timeout for sitemap HTTP requests.
const DefaultSitemapTimeout = 30 * time.Second

// Ensure SitemapService implements docdex.SitemapService at compile time.
var _ docdex.SitemapService = (*SitemapService)(nil)

// SitemapService discovers documentation page URLs by reading a site's
// sitemap. It checks robots.txt for Sitemap directives first and falls back
// to the conventional /sitemap.xml location. Sitemap index files are
// followed recursively.
type SitemapService struct {
	client *http.Client
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithSitemapTimeout sets the timeout for sitemap HTTP requests.
func WithSitemapTimeout(d time.Duration) SitemapOption {
	return func(s *SitemapService) {
		s.client.Timeout = d
	}
}

// NewSitemapService creates a new sitemap-based URL discovery service.
func NewSitemapService(opts ...SitemapOption) *SitemapService {
	s := &SitemapService{
		client: &http.Client{
			Timeout: DefaultSitemapTimeout,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs listed in the site's sitemap, restricted
// to URLs under the base URL's path prefix and filtered through filter when
// one is given. The result is sorted and deduplicated.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *docdex.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, docdex.Errorf(docdex.EINVALID, "base URL %q must be absolute", baseURL)
	}

	sitemapURLs, err := s.findSitemapURLs(ctx, base)
	if err != nil {
		return nil, err
	}
	if len(sitemapURLs) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "no sitemap found for %s", baseURL)
	}

	seen := make(map[string]bool)
	var urls []string
	for _, sm := range sitemapURLs {
		found, err := s.processSitemap(ctx, sm, seen)
		if err != nil {
			return nil, err
		}
		urls = append(urls, found...)
	}

	prefix := strings.TrimSuffix(base.Path, "/")
	out := urls[:0]
	dedup := make(map[string]bool)
	for _, u := range urls {
		if dedup[u] {
			continue
		}
		dedup[u] = true
		if !underPrefix(u, base.Host, prefix) {
			continue
		}
		if filter != nil && !filter.Match(u) {
			continue
		}
		out = append(out, u)
	}
	sort.Strings(out)

	return out, nil
}

// findSitemapURLs locates sitemap files for the site. It parses robots.txt
// Sitemap directives and falls back to /sitemap.xml if none are declared.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.Scheme + "://" + base.Host + "/robots.txt"

	var sitemaps []string
	if body, err := s.fetchURL(ctx, robotsURL); err == nil {
		scanner := bufio.NewScanner(body)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) < 8 || !strings.EqualFold(line[:8], "sitemap:") {
				continue
			}
			if sm := strings.TrimSpace(line[8:]); sm != "" {
				sitemaps = append(sitemaps, sm)
			}
		}
		body.Close()
	}

	if len(sitemaps) == 0 {
		fallback := base.Scheme + "://" + base.Host + "/sitemap.xml"
		if s.urlExists(ctx, fallback) {
			sitemaps = append(sitemaps, fallback)
		}
	}

	return sitemaps, nil
}

// processSitemap parses a sitemap document. Sitemap index files are followed
// recursively; the seen map guards against cycles between index files.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "malformed sitemap at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, docdex.Errorf(docdex.EINVALID, "empty sitemap at %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		var urls []string
		for _, sm := range root.SelectElements("sitemap") {
			loc := sm.SelectElement("loc")
			if loc == nil {
				continue
			}
			child := strings.TrimSpace(loc.Text())
			if child == "" {
				continue
			}
			found, err := s.processSitemap(ctx, child, seen)
			if err != nil {
				return nil, err
			}
			urls = append(urls, found...)
		}
		return urls, nil
	case "urlset":
		var urls []string
		for _, u := range root.SelectElements("url") {
			loc := u.SelectElement("loc")
			if loc == nil {
				continue
			}
			if page := strings.TrimSpace(loc.Text()); page != "" {
				urls = append(urls, page)
			}
		}
		return urls, nil
	default:
		return nil, docdex.Errorf(docdex.EINVALID, "unexpected sitemap root element %q at %s", root.Tag, sitemapURL)
	}
}

func (s *SitemapService) fetchURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

func (s *SitemapService) urlExists(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// underPrefix reports whether a page URL lives on the given host under the
// given path prefix. An empty prefix matches the whole host.
func underPrefix(rawURL, host, prefix string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Host != host {
		return false
	}
	if prefix == "" {
		return true
	}
	return u.Path == prefix || strings.HasPrefix(u.Path, prefix+"/")
}
