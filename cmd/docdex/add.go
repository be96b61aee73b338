package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/scan"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	// Compile filters early so a bad pattern fails before any work
	urlFilter, err := docdex.CompileURLFilter(c.Filter, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	// Preview mode: show pages without creating the project
	if c.Preview {
		return c.preview(deps, urlFilter)
	}

	// Force mode: delete existing project first
	if c.Force {
		existing, err := deps.Projects.FindProjects(deps.Ctx, docdex.ProjectFilter{Name: &c.Name})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		if len(existing) > 0 {
			if err := deps.Projects.DeleteProject(deps.Ctx, existing[0].ID); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
				return err
			}
		}
	}

	project := &docdex.Project{Name: c.Name}
	if isURL(c.Source) {
		project.SourceURL = c.Source
	} else {
		project.SourcePath = c.Source
	}

	if err := deps.Projects.CreateProject(deps.Ctx, project); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added project %q (%s)\n", c.Name, project.ID)

	if project.SourcePath != "" {
		return c.scanLocal(deps, project)
	}
	return c.scanSite(deps, project, urlFilter)
}

// preview lists the pages a scan would load without touching the store.
func (c *AddCmd) preview(deps *Dependencies, urlFilter *docdex.URLFilter) error {
	if isURL(c.Source) {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Source, urlFilter)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
		for _, u := range urls {
			fmt.Fprintln(deps.Stdout, u)
		}
		return nil
	}

	docs, err := deps.Scanner.Scan(deps.Ctx, c.Source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	for _, doc := range docs {
		fmt.Fprintln(deps.Stdout, doc.FilePath)
	}
	return nil
}

// scanLocal loads markdown pages from the project's source directory.
func (c *AddCmd) scanLocal(deps *Dependencies, project *docdex.Project) error {
	docs, err := deps.Scanner.Scan(deps.Ctx, project.SourcePath)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	var saved, bytes int
	for _, doc := range docs {
		doc.ProjectID = project.ID
		if err := deps.Documents.CreateDocument(deps.Ctx, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", doc.FilePath, docdex.ErrorMessage(err))
			continue
		}
		saved++
		bytes += len(doc.Content)
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d pages (%d bytes)\n", saved, bytes)
	return nil
}

// scanSite loads pages from the project's documentation site.
func (c *AddCmd) scanSite(deps *Dependencies, project *docdex.Project, urlFilter *docdex.URLFilter) error {
	if deps.SiteScanner == nil {
		return docdex.Errorf(docdex.EINTERNAL, "site scanner not configured")
	}

	progress := func(event scan.ProgressEvent) {
		switch event.Type {
		case scan.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d URLs\n", event.Total)
		case scan.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		}
	}

	result, err := deps.SiteScanner.ScanSite(deps.Ctx, project, urlFilter, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error scanning: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d pages (%d bytes)\n", result.Saved, result.Bytes)
	return nil
}
