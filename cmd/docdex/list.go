package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	projects, err := deps.Projects.FindProjects(deps.Ctx, docdex.ProjectFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	if len(projects) == 0 {
		fmt.Fprintln(deps.Stdout, "No projects found. Use 'docdex add' to create one.")
		return nil
	}

	for _, p := range projects {
		source := p.SourcePath
		if source == "" {
			source = p.SourceURL
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", p.ID, p.Name, source)
	}

	return nil
}
