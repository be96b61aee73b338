// Package indexer builds search indexes from a project's stored documents.
// It coordinates document retrieval and text analysis and produces the
// posting lists clients search against.
package indexer

import (
	"context"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/docdex/docdex"
)

// DefaultConcurrency is the number of documents analyzed in parallel.
const DefaultConcurrency = 8

// ProgressFunc is a callback for reporting build progress.
type ProgressFunc func(completed, total int)

// Builder constructs a search index from a project's documents.
type Builder struct {
	Documents   docdex.DocumentService
	Analyzer    docdex.Analyzer
	Concurrency int

	// EnvVersion is stamped into built indexes. May be left empty.
	EnvVersion string
}

// docTerms holds the analyzed terms of one document.
type docTerms struct {
	body  []string
	title []string
}

// Build analyzes every document of the project and assembles a search
// index. Documents are ordered by scan position, so rebuilding from the
// same documents yields an identical index. The progress callback, if
// provided, is invoked as documents are analyzed.
func (b *Builder) Build(ctx context.Context, project *docdex.Project, progress ProgressFunc) (*docdex.SearchIndex, error) {
	docs, err := b.Documents.FindDocuments(ctx, docdex.DocumentFilter{
		ProjectID: &project.ID,
		SortBy:    docdex.SortByPosition,
	})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "project %q has no documents to index", project.Name)
	}

	idx := &docdex.SearchIndex{
		Docnames:   make([]string, len(docs)),
		Filenames:  make([]string, len(docs)),
		Titles:     make([]string, len(docs)),
		Terms:      make(map[string][]int),
		TitleTerms: make(map[string][]int),
		EnvVersion: b.EnvVersion,
	}
	for i, doc := range docs {
		name := doc.Docname()
		if name == "" {
			name = docdex.Docname(doc.SourceURL)
		}
		idx.Docnames[i] = name
		if doc.FilePath != "" {
			idx.Filenames[i] = doc.FilePath
		} else {
			idx.Filenames[i] = doc.SourceURL
		}
		idx.Titles[i] = doc.Title
	}

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	analyzed := make([]docTerms, len(docs))
	total := len(docs)

	var completed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			analyzed[i] = b.analyze(doc)
			if progress != nil {
				progress(int(completed.Add(1)), total)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, terms := range analyzed {
		appendPostings(idx.Terms, terms.body, i)
		appendPostings(idx.TitleTerms, terms.title, i)
	}
	sortPostings(idx.Terms)
	sortPostings(idx.TitleTerms)

	return idx, nil
}

// analyze produces the body and title terms of one document. Title terms
// come from the document title and its section headings.
func (b *Builder) analyze(doc *docdex.Document) docTerms {
	body := b.Analyzer.Tokens(docdex.StripMarkdown(doc.Content))

	title := b.Analyzer.Tokens(doc.Title)
	for _, section := range docdex.ExtractSections(doc.Content) {
		title = append(title, b.Analyzer.Tokens(section.Title)...)
	}

	return docTerms{body: body, title: title}
}

// appendPostings records document i under each distinct term. Callers
// iterate documents in ascending order, so postings stay sorted; within
// one document duplicate terms are collapsed.
func appendPostings(postings map[string][]int, terms []string, i int) {
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		postings[term] = append(postings[term], i)
	}
}

func sortPostings(postings map[string][]int) {
	for _, docs := range postings {
		sort.Ints(docs)
	}
}
