package docdex_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/stretchr/testify/assert"
)

func TestExtractSections(t *testing.T) {
	t.Parallel()

	t.Run("extracts H1 heading", func(t *testing.T) {
		t.Parallel()

		markdown := "# Introduction\n\nSome content here."

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 1)
		assert.Equal(t, 1, sections[0].Level)
		assert.Equal(t, "Introduction", sections[0].Title)
		assert.Equal(t, "introduction", sections[0].Anchor)
	})

	t.Run("extracts all heading levels", func(t *testing.T) {
		t.Parallel()

		markdown := `# H1 Title
## H2 Title
### H3 Title
#### H4 Title
##### H5 Title
###### H6 Title`

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 6)
		for i, s := range sections {
			assert.Equal(t, i+1, s.Level)
		}
	})

	t.Run("generates URL-safe anchors", func(t *testing.T) {
		t.Parallel()

		sections := docdex.ExtractSections("# Conditional Independence: Testing & Tools")

		assert.Len(t, sections, 1)
		assert.Equal(t, "conditional-independence-testing-tools", sections[0].Anchor)
	})

	t.Run("handles duplicate headings with numeric suffixes", func(t *testing.T) {
		t.Parallel()

		markdown := "## Parameters\n\ntext\n\n## Parameters\n\ntext\n\n## Parameters"

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 3)
		assert.Equal(t, "parameters", sections[0].Anchor)
		assert.Equal(t, "parameters-1", sections[1].Anchor)
		assert.Equal(t, "parameters-2", sections[2].Anchor)
	})

	t.Run("ignores headings inside code fences", func(t *testing.T) {
		t.Parallel()

		markdown := "# Real Heading\n\n```python\n# not a heading\n```\n\n## Another"

		sections := docdex.ExtractSections(markdown)

		assert.Len(t, sections, 2)
		assert.Equal(t, "Real Heading", sections[0].Title)
		assert.Equal(t, "Another", sections[1].Title)
	})

	t.Run("returns nil for markdown without headings", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, docdex.ExtractSections("just a paragraph"))
		assert.Nil(t, docdex.ExtractSections(""))
	})
}

func TestExtractTitle(t *testing.T) {
	t.Parallel()

	t.Run("prefers the first H1", func(t *testing.T) {
		t.Parallel()

		markdown := "## Usage\n\n# Skeleton Learning\n\ntext"

		assert.Equal(t, "Skeleton Learning", docdex.ExtractTitle(markdown))
	})

	t.Run("falls back to the first heading of any level", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Usage", docdex.ExtractTitle("### Usage\n\ntext"))
	})

	t.Run("returns empty string for headingless documents", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", docdex.ExtractTitle("no headings here"))
	})
}

func TestStripMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("keeps link text and drops targets", func(t *testing.T) {
		t.Parallel()

		got := docdex.StripMarkdown("See [the guide](https://example.com/guide) for details.")

		assert.Contains(t, got, "the guide")
		assert.NotContains(t, got, "example.com")
	})

	t.Run("removes heading markers and inline code ticks", func(t *testing.T) {
		t.Parallel()

		got := docdex.StripMarkdown("# API Reference\n\nCall `learn_skeleton` first.")

		assert.Contains(t, got, "API Reference")
		assert.Contains(t, got, "learn_skeleton")
		assert.NotContains(t, got, "#")
		assert.NotContains(t, got, "`")
	})

	t.Run("keeps fenced code contents but drops the fences", func(t *testing.T) {
		t.Parallel()

		got := docdex.StripMarkdown("```go\nfmt.Println(1)\n```")

		assert.Contains(t, got, "fmt.Println(1)")
		assert.NotContains(t, got, "```")
	})
}
