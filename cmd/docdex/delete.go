package main

import (
	"fmt"

	"github.com/docdex/docdex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return docdex.Errorf(docdex.EINVALID, "use --force to confirm deletion")
	}

	project, err := findProjectByName(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Projects.DeleteProject(deps.Ctx, project.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted project %q\n", project.Name)
	return nil
}

// findProjectByName resolves a project name to its record, reporting a
// uniform not-found error on stderr.
func findProjectByName(deps *Dependencies, name string) (*docdex.Project, error) {
	projects, err := deps.Projects.FindProjects(deps.Ctx, docdex.ProjectFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return nil, err
	}
	if len(projects) == 0 {
		fmt.Fprintf(deps.Stderr, "error: project %q not found. Use 'docdex list' to see available projects.\n", name)
		return nil, docdex.Errorf(docdex.ENOTFOUND, "project %q not found", name)
	}
	return projects[0], nil
}
