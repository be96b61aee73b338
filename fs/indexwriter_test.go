package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexWriter(t *testing.T) {
	t.Parallel()

	t.Run("commit makes the saved index visible", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "searchindex.js")
		w := fs.NewIndexWriter(path)

		require.NoError(t, w.Save(context.Background(), []byte("payload")))
		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "index must not appear before commit")

		require.NoError(t, w.Commit())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(data))
	})

	t.Run("save does not clobber an existing index before commit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "searchindex.js")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

		w := fs.NewIndexWriter(path)
		require.NoError(t, w.Save(context.Background(), []byte("new")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "old", string(data))

		require.NoError(t, w.Commit())

		data, err = os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("abort removes pending output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "searchindex.js")
		w := fs.NewIndexWriter(path)

		require.NoError(t, w.Save(context.Background(), []byte("pending")))
		require.NoError(t, w.Abort())

		_, err := os.Stat(path + ".tmp")
		assert.True(t, os.IsNotExist(err))

		err = w.Commit()
		require.Error(t, err)
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
	})

	t.Run("commit without save fails", func(t *testing.T) {
		t.Parallel()

		w := fs.NewIndexWriter(filepath.Join(t.TempDir(), "searchindex.js"))

		err := w.Commit()
		require.Error(t, err)
		assert.Equal(t, docdex.ECONFLICT, docdex.ErrorCode(err))
	})

	t.Run("abort without save is a no-op", func(t *testing.T) {
		t.Parallel()

		w := fs.NewIndexWriter(filepath.Join(t.TempDir(), "searchindex.js"))
		require.NoError(t, w.Abort())
	})
}
