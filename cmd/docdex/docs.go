package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	project, err := findProjectByName(deps, c.Name)
	if err != nil {
		return err
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, docdex.DocumentFilter{
		ProjectID: &project.ID,
		SortBy:    docdex.SortByPosition,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q has no documents. Re-add it with 'docdex add %s <source> --force'.\n", c.Name, c.Name)
		return docdex.Errorf(docdex.ENOTFOUND, "project %q has no documents", c.Name)
	}

	if c.Full {
		fmt.Fprintln(deps.Stdout, docdex.FormatDocuments(docs))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents for %s (%d total):\n\n", c.Name, len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.Docname()
		}
		location := doc.FilePath
		if doc.SourceURL != "" {
			location = doc.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s\n", i+1, title, location)
	}

	return nil
}
