package sphinx_test

import (
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sphinx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	t.Run("parses a wrapped Search.setIndex payload", func(t *testing.T) {
		t.Parallel()

		data := []byte(`Search.setIndex({"docnames":["index","api/ci"],"filenames":["index.md","api/ci.md"],"titles":["Overview","CI Tests"],"terms":{"test":[0,1],"skeleton":1},"titleterms":{"overview":0},"envversion":"2.0"})`)

		idx, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
		assert.Equal(t, []string{"index", "api/ci"}, idx.Docnames)
		assert.Equal(t, []string{"Overview", "CI Tests"}, idx.Titles)
		assert.Equal(t, "2.0", idx.EnvVersion)
		require.NoError(t, idx.Validate())
	})

	t.Run("parses a bare JSON payload", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"docnames":["index"],"filenames":["index.md"],"titles":["Overview"],"terms":{},"titleterms":{}}`)

		idx, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
		assert.Equal(t, 1, idx.DocumentCount())
	})

	t.Run("normalizes scalar postings to single-element lists", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"docnames":["a","b"],"filenames":["a.md","b.md"],"titles":["A","B"],"terms":{"solo":1,"both":[0,1]},"titleterms":{}}`)

		idx, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
		assert.Equal(t, []int{1}, idx.Terms["solo"])
		assert.Equal(t, []int{0, 1}, idx.Terms["both"])
	})

	t.Run("tolerates a trailing semicolon", func(t *testing.T) {
		t.Parallel()

		data := []byte("Search.setIndex({\"docnames\":[],\"filenames\":[],\"titles\":[],\"terms\":{},\"titleterms\":{}});\n")

		_, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
	})

	t.Run("decodes object inventories", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"docnames":["api"],"filenames":["api.md"],"titles":["API"],"terms":{},"titleterms":{},"objects":{"py":{"dodiscover.Context":[0,0,1,"context"]}},"objtypes":{"0":"py:class"},"objnames":{"0":["py","class","Python class"]}}`)

		idx, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
		require.Contains(t, idx.Objects, "py")
		obj := idx.Objects["py"]["dodiscover.Context"]
		assert.Equal(t, 0, obj.Doc)
		assert.Equal(t, "context", obj.Anchor)
		assert.Equal(t, []string{"py:class"}, idx.ObjectTypes)
		assert.Equal(t, [][]string{{"py", "class", "Python class"}}, idx.ObjectNames)

		out, err := sphinx.Marshal(idx)
		require.NoError(t, err)
		assert.Contains(t, string(out), `"objnames"`)
	})

	t.Run("decodes a numeric envversion", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"docnames":[],"filenames":[],"titles":[],"terms":{},"titleterms":{},"envversion":90}`)

		idx, err := sphinx.Unmarshal(data)

		require.NoError(t, err)
		assert.Equal(t, "90", idx.EnvVersion)
	})

	t.Run("rejects an unclosed wrapper", func(t *testing.T) {
		t.Parallel()

		_, err := sphinx.Unmarshal([]byte(`Search.setIndex({"docnames":[]}`))

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := sphinx.Unmarshal([]byte(`{"docnames": [,]}`))

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})

	t.Run("rejects content that is neither wrapper nor object", func(t *testing.T) {
		t.Parallel()

		_, err := sphinx.Unmarshal([]byte("var x = 1;"))

		require.Error(t, err)
		assert.Equal(t, docdex.EINVALID, docdex.ErrorCode(err))
	})
}

func TestMarshal(t *testing.T) {
	t.Parallel()

	idx := &docdex.SearchIndex{
		Docnames:   []string{"api/ci", "index"},
		Filenames:  []string{"api/ci.md", "index.md"},
		Titles:     []string{"CI Tests", "Overview"},
		Terms:      map[string][]int{"test": {0, 1}, "overview": {1}},
		TitleTerms: map[string][]int{"test": {0}},
		EnvVersion: "2.0",
	}

	t.Run("round-trips through the wire form", func(t *testing.T) {
		t.Parallel()

		data, err := sphinx.Marshal(idx)
		require.NoError(t, err)

		got, err := sphinx.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, idx, got)
	})

	t.Run("round-trips through the wrapped form", func(t *testing.T) {
		t.Parallel()

		data, err := sphinx.MarshalJS(idx)
		require.NoError(t, err)
		assert.True(t, len(data) > 0)
		assert.Contains(t, string(data), "Search.setIndex(")

		got, err := sphinx.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, idx, got)
	})

	t.Run("output is deterministic", func(t *testing.T) {
		t.Parallel()

		a, err := sphinx.Marshal(idx)
		require.NoError(t, err)
		b, err := sphinx.Marshal(idx)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("marshals an empty index", func(t *testing.T) {
		t.Parallel()

		data, err := sphinx.Marshal(&docdex.SearchIndex{})
		require.NoError(t, err)

		got, err := sphinx.Unmarshal(data)
		require.NoError(t, err)
		assert.Equal(t, 0, got.DocumentCount())
	})
}
