package main

import (
	"fmt"
	"os"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/sphinx"
)

// Run executes the validate command.
func (c *ValidateCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: cannot read %q: %v\n", c.Path, err)
		return err
	}

	idx, err := sphinx.Unmarshal(data)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Path, docdex.ErrorMessage(err))
		return err
	}

	if err := idx.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Path, docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s: OK (%d documents, %d terms, %d title terms)\n",
		c.Path, idx.DocumentCount(), len(idx.Terms), len(idx.TitleTerms))
	return nil
}
