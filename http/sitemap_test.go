package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docdex/docdex"
	docdexhttp "github.com/docdex/docdex/http"
)

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("discovers via robots.txt directive", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "User-agent: *\nDisallow:\nSitemap: %s/docs-sitemap.xml\n", srv.URL)
		})
		mux.HandleFunc("/docs-sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/api.html", srv.URL+"/tutorial.html")
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/api.html", srv.URL + "/tutorial.html"}, urls)
	})

	t.Run("falls back to conventional sitemap location", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/index.html", srv.URL+"/reference.html")
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Len(t, urls, 2)
	})

	t.Run("follows sitemap index recursively", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>%s/sitemap-a.xml</loc></sitemap>
  <sitemap><loc>%s/sitemap-b.xml</loc></sitemap>
</sitemapindex>`, srv.URL, srv.URL)
		})
		mux.HandleFunc("/sitemap-a.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/a1.html", srv.URL+"/a2.html")
		})
		mux.HandleFunc("/sitemap-b.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/b1.html", srv.URL+"/a1.html")
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/a1.html", srv.URL + "/a2.html", srv.URL + "/b1.html"}, urls)
	})

	t.Run("restricts to base path prefix", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/docs/guide.html", srv.URL+"/blog/post.html")
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		urls, err := s.DiscoverURLs(context.Background(), srv.URL+"/docs/", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/docs/guide.html"}, urls)
	})

	t.Run("applies URL filter", func(t *testing.T) {
		t.Parallel()

		var srv *httptest.Server
		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, urlset, srv.URL+"/api.html", srv.URL+"/changelog.html")
		})
		srv = httptest.NewServer(mux)
		defer srv.Close()

		filter := &docdex.URLFilter{
			Exclude: []*regexp.Regexp{regexp.MustCompile(`changelog`)},
		}

		s := docdexhttp.NewSitemapService()
		urls, err := s.DiscoverURLs(context.Background(), srv.URL, filter)
		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/api.html"}, urls)
	})

	t.Run("no sitemap is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		_, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.Error(t, err)
		assert.Equal(t, docdex.ENOTFOUND, docdex.ErrorCode(err))
	})

	t.Run("malformed sitemap is EINVALID", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<urlset><url><loc>broken"))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		s := docdexhttp.NewSitemapService()
		_, err := s.DiscoverURLs(context.Background(), srv.URL, nil)
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("relative base URL is EINVALID", func(t *testing.T) {
		t.Parallel()

		s := docdexhttp.NewSitemapService()
		_, err := s.DiscoverURLs(context.Background(), "docs.example.com", nil)
		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}

const urlset = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>%s</loc></url>
  <url><loc>%s</loc></url>
</urlset>`
