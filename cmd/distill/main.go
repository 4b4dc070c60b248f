package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/jswierad/distill"
	"github.com/jswierad/distill/batch"
	"github.com/jswierad/distill/gemini"
	"github.com/jswierad/distill/goquery"
	"github.com/jswierad/distill/htmltomarkdown"
	distillhttp "github.com/jswierad/distill/http"
	"github.com/jswierad/distill/readability"
	distillslog "github.com/jswierad/distill/slog"
	"github.com/jswierad/distill/sqlite"
	"github.com/jswierad/distill/trafilatura"
	"google.golang.org/genai"
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
	// Database path for the run ledger. Set before calling Run().
	DBPath string

	// SQLite database used by the run ledger.
	DB *sqlite.DB

	// Services for end-to-end testing.
	RunService distill.RunService
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
		kong.Name("distill"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'distill --help' to see available commands")
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

	// Open the run ledger
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set DISTILL_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	m.RunService = sqlite.NewRunService(m.DB)
	deps.DB = m.DB
	deps.Runs = m.RunService

	logger := slog.New(slog.NewTextHandler(stderr, nil))

	if cmd == "batch" || cmd == "serve" {
		engine := "trafilatura"
		concurrency := 4
		tables, comments := true, false
		if cmd == "batch" {
			engine = cli.Batch.Engine
			concurrency = cli.Batch.Concurrency
			tables = cli.Batch.Tables
			comments = cli.Batch.Comments
		}
		extractor, err := newExtractor(engine, tables, comments, logger)
		if err != nil {
			return err
		}
		deps.Runner = &batch.Runner{
			Extractor:   extractor,
			Converter:   htmltomarkdown.NewConverter(),
			Enricher:    goquery.NewEnricher(),
			Concurrency: concurrency,
		}
	}

	if cmd == "scrape" || cmd == "serve" {
		engine := "trafilatura"
		rps := 1.0
		tables, comments := true, false
		if cmd == "scrape" {
			engine = cli.Scrape.Engine
			rps = cli.Scrape.RPS
			tables = cli.Scrape.Tables
			comments = cli.Scrape.Comments
		}
		extractor, err := newExtractor(engine, tables, comments, logger)
		if err != nil {
			return err
		}
		fetcher := distillhttp.NewFetcher()
		defer fetcher.Close()

		deps.Scraper = &batch.Scraper{
			Fetcher:        fetcher,
			Extractor:      extractor,
			Converter:      htmltomarkdown.NewConverter(),
			Enricher:       goquery.NewEnricher(),
			Limiter:        batch.NewDomainLimiter(rps),
			Timeout:        distillhttp.DefaultFetchTimeout,
			IncludeRawText: cmd == "scrape" && cli.Scrape.Raw,
		}
	}

	if cmd == "ask" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Asker = gemini.NewAsker(client)
	}

	return kongCtx.Run(deps)
}

// newExtractor resolves the extraction engine by name. Unknown names fail
// at startup rather than midway through a run. The tables and comments
// toggles only affect the trafilatura engine; readability has no
// equivalent knobs.
func newExtractor(engine string, tables, comments bool, logger *slog.Logger) (distill.Extractor, error) {
	var ext distill.Extractor
	switch engine {
	case "", "trafilatura":
		ext = trafilatura.NewExtractor(
			trafilatura.WithTables(tables),
			trafilatura.WithComments(comments),
		)
	case "readability":
		ext = readability.NewExtractor()
	default:
		return nil, distill.Errorf(distill.EINVALID, "unknown extraction engine %q", engine)
	}
	return distillslog.NewLoggingExtractor(ext, logger), nil
}

func defaultDBPath() string {
	if path := os.Getenv("DISTILL_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "distill.db"
	}
	dir := filepath.Join(home, ".distill")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "distill.db")
}
