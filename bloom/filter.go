// Package bloom provides probabilistic dedup of pages seen during scans
// using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for page deduplication. Keys are usually
// content hashes. False positives are possible; false negatives are not.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// TestAndAdd tests the key and adds it in one pass.
// Returns true if the key might have been present already.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}
