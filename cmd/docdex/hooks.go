package main

import (
	"fmt"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/yaml"
)

// Run executes the hooks check command.
func (c *HooksCheckCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Config, docdex.ErrorMessage(err))
		return err
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Config, docdex.ErrorMessage(err))
		return err
	}

	var hooks int
	for _, repo := range cfg.Repos {
		hooks += len(repo.Hooks)
	}
	fmt.Fprintf(deps.Stdout, "%s: OK (%d repos, %d hooks)\n", c.Config, len(cfg.Repos), hooks)
	return nil
}

// Run executes the hooks files command.
func (c *HooksFilesCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Config, docdex.ErrorMessage(err))
		return err
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "%s: %s\n", c.Config, docdex.ErrorMessage(err))
		return err
	}

	for _, path := range c.Paths {
		resolved := cfg.HooksFor(path)
		if len(resolved) == 0 {
			fmt.Fprintf(deps.Stdout, "%s: no hooks\n", path)
			continue
		}
		fmt.Fprintf(deps.Stdout, "%s:\n", path)
		for _, r := range resolved {
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", r.Hook.ID, r.Repo)
		}
	}

	return nil
}
