package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/sphinx"
)

// Run executes the build command.
func (c *BuildCmd) Run(deps *Dependencies) error {
	project, err := findProjectByName(deps, c.Name)
	if err != nil {
		return err
	}

	idx, err := deps.Builder.Build(deps.Ctx, project, func(completed, total int) {
		if completed == total {
			fmt.Fprintf(deps.Stdout, "  Analyzed %d documents\n", total)
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	var data []byte
	switch c.Format {
	case "json":
		data, err = sphinx.Marshal(idx)
	default:
		data, err = sphinx.MarshalJS(idx)
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	out := c.Out
	if out == "" {
		out = "searchindex.js"
		if c.Format == "json" {
			out = "searchindex.json"
		}
	}

	writer := fs.NewIndexWriter(out)
	if err := writer.Save(deps.Ctx, data); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}
	if err := writer.Commit(); err != nil {
		_ = writer.Abort()
		fmt.Fprintf(deps.Stderr, "error: %s\n", docdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Wrote %s (%d documents, %d terms)\n", out, idx.DocumentCount(), len(idx.Terms))
	return nil
}
