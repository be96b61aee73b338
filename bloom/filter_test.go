package bloom_test

import (
	"testing"

	"github.com/docdex/docdex/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_TestAndAdd(t *testing.T) {
	t.Parallel()

	t.Run("reports prior membership", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)

		assert.False(t, f.TestAndAdd("hash-1"))
		assert.True(t, f.TestAndAdd("hash-1"))
	})

	t.Run("unseen keys usually pass", func(t *testing.T) {
		t.Parallel()

		f := bloom.NewFilter(1000, 0.01)
		f.TestAndAdd("hash-1")

		assert.False(t, f.TestAndAdd("hash-2"))
	})
}
