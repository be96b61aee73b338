package main

import (
	"fmt"
	"os"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sphinx"
)

// Run executes the audit command.
func (c *AuditCmd) Run(deps *Dependencies) error {
	project, err := findProjectByName(deps, c.Name)
	if err != nil {
		return err
	}
	if project.SourceURL == "" {
		fmt.Fprintf(deps.Stderr, "error: project %q has no site URL to audit against\n", c.Name)
		return docdex.Errorf(docdex.EINVALID, "project %q has no site URL to audit against", c.Name)
	}

	var idx *docdex.SearchIndex
	if c.IndexFile != "" {
		data, err := os.ReadFile(c.IndexFile)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.IndexFile, err)
			return err
		}
		if idx, err = sphinx.Unmarshal(data); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
	} else {
		if idx, err = deps.Builder.Build(deps.Ctx, project, nil); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
			return err
		}
	}

	report, err := deps.Auditor.Audit(deps.Ctx, project.SourceURL, idx, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if report.Clean() {
		fmt.Fprintf(deps.Stdout, "Index is in sync with %s (%d pages)\n", project.SourceURL, report.Pages)
		return nil
	}

	for _, name := range report.Missing {
		fmt.Fprintf(deps.Stdout, "missing  %s\n", name)
	}
	for _, name := range report.Stale {
		fmt.Fprintf(deps.Stdout, "stale    %s\n", name)
	}
	fmt.Fprintf(deps.Stdout, "%d missing, %d stale of %d site pages\n",
		len(report.Missing), len(report.Stale), report.Pages)

	return docdex.Errorf(docdex.ECONFLICT, "index is out of sync with %s", project.SourceURL)
}
