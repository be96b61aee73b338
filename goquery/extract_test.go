package goquery_test

import (
	"testing"

	"github.com/docdex/docdex/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sphinxPage = `<!DOCTYPE html>
<html>
<head><title>Skeleton Learning — dodiscover documentation</title></head>
<body>
  <nav class="wy-nav-side"><a href="/other">Other Page</a></nav>
  <div role="main">
    <h1>Skeleton Learning<a class="headerlink" href="#skeleton-learning">¶</a></h1>
    <p>Constraint-based discovery starts from the complete graph.</p>
    <h2>Conditioning Sets<a class="headerlink" href="#conditioning-sets">¶</a></h2>
    <p>Sets are enumerated by size.</p>
  </div>
  <footer>Built with Sphinx</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	extractor := goquery.NewExtractor()

	t.Run("extracts title without site suffix", func(t *testing.T) {
		t.Parallel()

		title, _, _, err := extractor.Extract(sphinxPage)

		require.NoError(t, err)
		assert.Equal(t, "Skeleton Learning", title)
	})

	t.Run("extracts headings without permalink markers", func(t *testing.T) {
		t.Parallel()

		_, headings, _, err := extractor.Extract(sphinxPage)

		require.NoError(t, err)
		assert.Equal(t, []string{"Skeleton Learning", "Conditioning Sets"}, headings)
	})

	t.Run("content excludes navigation and footer", func(t *testing.T) {
		t.Parallel()

		_, _, content, err := extractor.Extract(sphinxPage)

		require.NoError(t, err)
		assert.Contains(t, content, "complete graph")
		assert.NotContains(t, content, "Other Page")
		assert.NotContains(t, content, "Built with Sphinx")
	})

	t.Run("falls back through selector list", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Guide</title></head><body><article><h2>Install</h2><p>pip install</p></article></body></html>`

		_, headings, content, err := extractor.Extract(page)

		require.NoError(t, err)
		assert.Equal(t, []string{"Install"}, headings)
		assert.Contains(t, content, "pip install")
	})

	t.Run("falls back to h1 when title element is missing", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><main><h1>Bare Page</h1></main></body></html>`

		title, _, _, err := extractor.Extract(page)

		require.NoError(t, err)
		assert.Equal(t, "Bare Page", title)
	})

	t.Run("handles pages with no recognized content area", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><p>plain</p></body></html>`

		_, headings, content, err := extractor.Extract(page)

		require.NoError(t, err)
		assert.Empty(t, headings)
		assert.Contains(t, content, "plain")
	})
}
