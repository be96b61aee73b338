package docdex

import (
	"math"
	"sort"
	"strings"
)

// Term weights at query time. Title hits outrank body hits; prefix matches
// count half of an exact match.
const (
	bodyWeight   = 1.0
	titleWeight  = 2.0
	prefixFactor = 0.5
)

// SearchOptions configures index queries.
type SearchOptions struct {
	// Maximum number of results to return. Zero means no limit.
	Limit int `json:"limit,omitempty"`

	// Prefix enables prefix matching for the final query term, so
	// incremental queries like "skele" still find "skeleton".
	Prefix bool `json:"prefix,omitempty"`
}

// SearchResult represents one matching document.
type SearchResult struct {
	Docname string  `json:"docname"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
}

// Search evaluates a query against the index. Query text is analyzed with
// the same analyzer used at build time; all analyzed terms must match a
// document for it to be returned (AND semantics). Results are ordered by
// score descending, ties broken by docname.
func (idx *SearchIndex) Search(analyzer Analyzer, query string, opts SearchOptions) []SearchResult {
	terms := analyzer.Tokens(query)
	if len(terms) == 0 {
		return nil
	}

	// Per-document scores for documents that matched every term so far.
	scores := make(map[int]float64)
	for i, term := range terms {
		last := i == len(terms)-1
		matched := idx.matchTerm(term, opts.Prefix && last)
		if len(matched) == 0 {
			return nil
		}
		if i == 0 {
			for doc, score := range matched {
				scores[doc] = score
			}
			continue
		}
		for doc := range scores {
			score, ok := matched[doc]
			if !ok {
				delete(scores, doc)
				continue
			}
			scores[doc] += score
		}
	}

	results := make([]SearchResult, 0, len(scores))
	for doc, score := range scores {
		results = append(results, SearchResult{
			Docname: idx.Docnames[doc],
			Title:   idx.Titles[doc],
			Score:   score,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Docname < results[j].Docname
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

// matchTerm returns per-document scores for a single analyzed term.
// Exact postings are consulted first; prefix expansion only runs when the
// term matched nothing exactly.
func (idx *SearchIndex) matchTerm(term string, prefix bool) map[int]float64 {
	matched := make(map[int]float64)
	idx.scorePostings(matched, idx.Terms[term], bodyWeight)
	idx.scorePostings(matched, idx.TitleTerms[term], titleWeight)

	if len(matched) == 0 && prefix {
		for candidate, docs := range idx.Terms {
			if strings.HasPrefix(candidate, term) {
				idx.scorePostings(matched, docs, bodyWeight*prefixFactor)
			}
		}
		for candidate, docs := range idx.TitleTerms {
			if strings.HasPrefix(candidate, term) {
				idx.scorePostings(matched, docs, titleWeight*prefixFactor)
			}
		}
	}

	return matched
}

// scorePostings adds a rarity-weighted contribution for each posting.
// Terms present in many documents contribute less than rare ones.
func (idx *SearchIndex) scorePostings(matched map[int]float64, docs []int, weight float64) {
	if len(docs) == 0 {
		return
	}
	rarity := 1.0 / (1.0 + math.Log(float64(len(docs))))
	for _, doc := range docs {
		matched[doc] += weight * rarity
	}
}
