package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/audit"
	"github.com/docdex/docdex/fs"
	"github.com/docdex/docdex/goquery"
	"github.com/docdex/docdex/htmltomarkdown"
	dochttp "github.com/docdex/docdex/http"
	"github.com/docdex/docdex/indexer"
	"github.com/docdex/docdex/scan"
	docslog "github.com/docdex/docdex/slog"
	"github.com/docdex/docdex/snowball"
	"github.com/docdex/docdex/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProjectService  docdex.ProjectService
	DocumentService docdex.DocumentService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("docdex"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'docdex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DOCDEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.ProjectService = sqlite.NewProjectService(m.DB)
	m.DocumentService = sqlite.NewDocumentService(m.DB)
	analyzer := snowball.NewAnalyzer()

	deps.DB = m.DB
	deps.Projects = m.ProjectService
	deps.Documents = m.DocumentService
	deps.Analyzer = analyzer
	deps.Sitemaps = docslog.NewLoggingSitemapService(dochttp.NewSitemapService(), logger)
	deps.Scanner = &fs.Scanner{}
	deps.Builder = &indexer.Builder{
		Documents: m.DocumentService,
		Analyzer:  analyzer,
	}
	deps.Auditor = &audit.Auditor{Sitemaps: deps.Sitemaps}

	// Site scans fetch over the network; the fetcher only exists for the
	// duration of the add command.
	if cmd == "add" && !cli.Add.Preview && isURL(cli.Add.Source) {
		fetcher := docslog.NewLoggingFetcher(
			dochttp.NewFetcher(dochttp.WithLimiter(dochttp.NewDomainLimiter(dochttp.DefaultRequestsPerSecond))),
			logger,
		)
		defer fetcher.Close()

		deps.SiteScanner = &scan.SiteScanner{
			Sitemaps:    deps.Sitemaps,
			Fetcher:     fetcher,
			Extractor:   goquery.NewExtractor(),
			Converter:   htmltomarkdown.NewConverter(),
			Documents:   m.DocumentService,
			Concurrency: cli.Add.Concurrency,
			Log: func(format string, args ...any) {
				logger.Debug(fmt.Sprintf(format, args...))
			},
		}
	}

	return kongCtx.Run(deps)
}

// isURL reports whether the add source is a site URL rather than a local
// directory.
func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func defaultDBPath() string {
	if path := os.Getenv("DOCDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "docdex.db"
	}
	dir := filepath.Join(home, ".docdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "docdex.db")
}
