package main

import (
	"context"
	"io"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/audit"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/indexer"
	"github.com/docdex/docdex/scan"
	"github.com/docdex/docdex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	DB          *sqlite.DB
	Projects    docdex.ProjectService
	Documents   docdex.DocumentService
	Sitemaps    docdex.SitemapService
	Analyzer    docdex.Analyzer
	Scanner     *fs.Scanner
	SiteScanner *scan.SiteScanner
	Builder     *indexer.Builder
	Auditor     *audit.Auditor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`

	Add      AddCmd      `cmd:"" help:"Add a documentation project and scan its pages"`
	List     ListCmd     `cmd:"" help:"List all registered projects"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a project and its documents"`
	Docs     DocsCmd     `cmd:"" help:"List documents for a project"`
	Build    BuildCmd    `cmd:"" help:"Build a search index from a project's documents"`
	Search   SearchCmd   `cmd:"" help:"Search a project's index"`
	Validate ValidateCmd `cmd:"" help:"Validate a search index file"`
	Audit    AuditCmd    `cmd:"" help:"Compare an index against the live documentation site"`
	Hooks    HooksCmd    `cmd:"" help:"Inspect a pre-commit hook configuration"`
}

// AddCmd is the "add" subcommand. Source is either a local directory of
// markdown pages or the base URL of a built documentation site.
type AddCmd struct {
	Name        string   `arg:"" help:"Project name"`
	Source      string   `arg:"" help:"Documentation directory or site URL"`
	Preview     bool     `short:"p" help:"Show pages without creating the project"`
	Force       bool     `short:"f" help:"Delete existing project first"`
	Filter      []string `short:"F" name:"filter" help:"Filter site URLs by regex (repeatable)"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Project name"`
	Force bool   `help:"Confirm deletion"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	Name string `arg:"" help:"Project name"`
	Full bool   `help:"Show full document content"`
}

// BuildCmd is the "build" subcommand.
type BuildCmd struct {
	Name   string `arg:"" help:"Project name"`
	Out    string `short:"o" help:"Output path (defaults to searchindex.js in the working directory)"`
	Format string `default:"js" enum:"js,json" help:"Output format: js or json"`
}

// SearchCmd is the "search" subcommand. It searches either a project's
// freshly built index or an index file on disk.
type SearchCmd struct {
	Query     []string `arg:"" help:"Search terms"`
	Project   string   `short:"P" help:"Project name to search"`
	IndexFile string   `short:"i" help:"Search an index file instead of a project"`
	Limit     int      `short:"n" default:"10" help:"Maximum number of results"`
	Prefix    bool     `default:"true" negatable:"" help:"Match the last term as a prefix"`
}

// ValidateCmd is the "validate" subcommand.
type ValidateCmd struct {
	Path string `arg:"" help:"Path to a searchindex.js or JSON index file"`
}

// AuditCmd is the "audit" subcommand.
type AuditCmd struct {
	Name      string `arg:"" help:"Project name"`
	IndexFile string `short:"i" help:"Audit an index file instead of a freshly built index"`
}

// HooksCmd groups the pre-commit configuration subcommands.
type HooksCmd struct {
	Check HooksCheckCmd `cmd:"" help:"Validate a hook configuration file"`
	Files HooksFilesCmd `cmd:"" help:"Show which hooks run for the given files"`
}

// HooksCheckCmd is the "hooks check" subcommand.
type HooksCheckCmd struct {
	Config string `arg:"" optional:"" default:".pre-commit-config.yaml" help:"Path to the hook configuration file"`
}

// HooksFilesCmd is the "hooks files" subcommand.
type HooksFilesCmd struct {
	Paths  []string `arg:"" help:"File paths to resolve"`
	Config string   `short:"C" default:".pre-commit-config.yaml" help:"Path to the hook configuration file"`
}
