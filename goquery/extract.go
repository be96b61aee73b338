// Package goquery extracts page content from built documentation sites.
// It pulls the title, section headings, and main content area out of a
// page's HTML, discarding theme chrome such as navigation sidebars and
// footers.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/docdex/docdex"
)

// contentSelectors locate the main content area across common
// documentation generators, tried in order:
//   - [role=main], div.document, div.body: Sphinx (ReadTheDocs and
//     classic themes)
//   - .md-content: MkDocs Material
//   - article: Docusaurus and most modern themes
//   - main: generic HTML5 sites
var contentSelectors = []string{
	"[role=main]",
	"div.document",
	"div.body",
	".md-content",
	"article",
	"main",
}

// Ensure Extractor implements docdex.PageExtractor at compile time.
var _ docdex.PageExtractor = (*Extractor)(nil)

// Extractor extracts documentation page content using CSS selectors.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title, section headings, and the HTML of the
// main content area. Heading permalink markers ("¶") are stripped.
func (e *Extractor) Extract(pageHTML string) (string, []string, string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(pageHTML))
	if err != nil {
		return "", nil, "", docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	content := doc.Selection
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}

	title := extractTitle(doc, content)

	var headings []string
	content.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		if text := headingText(sel); text != "" {
			headings = append(headings, text)
		}
	})

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return "", nil, "", err
	}

	return title, headings, contentHTML, nil
}

// extractTitle prefers the <title> element, stripped of the site-name
// suffix Sphinx and friends append (e.g. "Page — project documentation").
// Falls back to the first h1 of the content area.
func extractTitle(doc *goquery.Document, content *goquery.Selection) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	for _, sep := range []string{" — ", " | ", " · "} {
		if i := strings.Index(title, sep); i > 0 {
			title = title[:i]
			break
		}
	}
	title = strings.TrimSpace(title)
	if title != "" {
		return title
	}
	return headingText(content.Find("h1").First())
}

// headingText returns the visible text of a heading, skipping permalink
// anchors and script/style nodes.
func headingText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		writeText(&b, node)
	}
	text := strings.TrimSpace(b.String())
	return strings.TrimSpace(strings.TrimSuffix(text, "¶"))
}

// writeText walks the node tree collecting text content, skipping
// non-content elements.
func writeText(b *strings.Builder, n *html.Node) {
	switch {
	case n.Type == html.TextNode:
		b.WriteString(n.Data)
	case n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style"):
		return
	case n.Type == html.ElementNode && n.Data == "a":
		// Skip Sphinx headerlink anchors but keep ordinary links.
		for _, attr := range n.Attr {
			if attr.Key == "class" && strings.Contains(attr.Val, "headerlink") {
				return
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
}
