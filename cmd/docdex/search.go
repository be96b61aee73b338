package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sphinx"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	idx, err := c.loadIndex(deps)
	if err != nil {
		return err
	}

	query := strings.Join(c.Query, " ")
	results := idx.Search(deps.Analyzer, query, docdex.SearchOptions{
		Limit:  c.Limit,
		Prefix: c.Prefix,
	})

	if len(results) == 0 {
		fmt.Fprintf(deps.Stdout, "No results for %q\n", query)
		return nil
	}

	for _, result := range results {
		title := result.Title
		if title == "" {
			title = result.Docname
		}
		fmt.Fprintf(deps.Stdout, "%6.2f  %s  %s\n", result.Score, result.Docname, title)
	}

	return nil
}

// loadIndex resolves the index to search: an index file when --index is
// given, otherwise a fresh build of the named project.
func (c *SearchCmd) loadIndex(deps *Dependencies) (*docdex.SearchIndex, error) {
	if c.IndexFile != "" {
		data, err := os.ReadFile(c.IndexFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.IndexFile, err)
			return nil, err
		}
		idx, err := sphinx.Unmarshal(data)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return nil, err
		}
		if err := idx.Validate(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return nil, err
		}
		return idx, nil
	}

	if c.Project == "" {
		fmt.Fprintf(deps.Stderr, "error: either --project or --index is required\n")
		return nil, docdex.Errorf(docdex.EINVALID, "either --project or --index is required")
	}

	project, err := findProjectByName(deps, c.Project)
	if err != nil {
		return nil, err
	}

	idx, err := deps.Builder.Build(deps.Ctx, project, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return nil, err
	}
	return idx, nil
}
