package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	bookmarkai "github.com/mmelton12/bookmark-ai"
	"github.com/mmelton12/bookmark-ai/anthropic"
	"github.com/mmelton12/bookmark-ai/bcrypt"
	"github.com/mmelton12/bookmark-ai/gemini"
	"github.com/mmelton12/bookmark-ai/goquery"
	bookmarkhttp "github.com/mmelton12/bookmark-ai/http"
	"github.com/mmelton12/bookmark-ai/ingest"
	"github.com/mmelton12/bookmark-ai/openai"
	"github.com/mmelton12/bookmark-ai/prometheus"
	"github.com/mmelton12/bookmark-ai/readability"
	"github.com/mmelton12/bookmark-ai/rod"
	bmslog "github.com/mmelton12/bookmark-ai/slog"
	"github.com/mmelton12/bookmark-ai/sqlite"
	"github.com/mmelton12/bookmark-ai/trafilatura"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when --db is not given. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Provider replaces the configured AI provider when set. Used by
	// end-to-end tests.
	Provider bookmarkai.Provider

	// Fetcher replaces the configured page fetcher when set.
	Fetcher bookmarkai.Fetcher
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
		kong.Name("bookmarkd"),
		kong.Description("Bookmark manager that summarizes, tags and categorizes saved pages."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'bookmarkd --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	settings, err := LoadSettings(cli.Config)
	if err != nil {
		return err
	}
	if cli.Provider != "" {
		settings.Provider = cli.Provider
	}
	if cli.Model != "" {
		settings.Model = cli.Model
	}
	if cli.Fetcher != "" {
		settings.Fetcher = cli.Fetcher
	}
	if cli.Extractor != "" {
		settings.Extractor = cli.Extractor
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	deps.Logger = newLogger(kongCtx.Command(), cli.LogLevel, stderr)

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BOOKMARKD_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	bookmarks := sqlite.NewBookmarkService(m.DB)
	deps.Users = sqlite.NewUserService(m.DB)
	deps.Bookmarks = bookmarks
	deps.Folders = sqlite.NewFolderService(m.DB)
	deps.Hasher = bcrypt.NewPasswordHasher(0)

	provider := m.Provider
	if provider == nil {
		provider = newProvider(settings)
	}
	provider = bmslog.NewLoggingProvider(provider, deps.Logger)
	deps.Chatter = ingest.NewChatter(provider)

	cmd := kongCtx.Command()
	if cmd == "serve" || cmd == "add <url>" {
		fetcher := m.Fetcher
		if fetcher == nil {
			if fetcher, err = newFetcher(settings); err != nil {
				fmt.Fprintln(stderr, "Hint: the rod fetcher needs Chrome or Chromium installed")
				return fmt.Errorf("failed to start fetcher: %w", err)
			}
			defer fetcher.Close()
		}

		deps.Metrics = prometheus.NewRegistry()
		var ingester bookmarkai.Ingester = &ingest.Ingester{
			Bookmarks: bookmarks,
			Fetcher:   bmslog.NewLoggingFetcher(fetcher, deps.Logger),
			Extractor: newExtractor(settings),
			Analyzer:  ingest.NewAnalyzer(provider, settings.AnalyzerConfig()),
		}
		ingester = prometheus.NewIngester(ingester, deps.Metrics)
		deps.Ingester = bmslog.NewLoggingIngester(ingester, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// newProvider returns the provider named in settings.
func newProvider(s *Settings) bookmarkai.Provider {
	switch s.Provider {
	case "anthropic":
		return anthropic.NewProvider(s.Model)
	case "openai":
		return openai.NewProvider(openai.WithModel(s.Model))
	default:
		return gemini.NewProvider(gemini.WithModel(s.Model))
	}
}

// newFetcher returns the fetcher named in settings.
func newFetcher(s *Settings) (bookmarkai.Fetcher, error) {
	if s.Fetcher == "rod" {
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	return bookmarkhttp.NewFetcher(), nil
}

// newExtractor returns the extractor named in settings. The alternatives
// only choose the main content; metadata always comes from goquery.
func newExtractor(s *Settings) bookmarkai.Extractor {
	base := goquery.NewExtractor()
	switch s.Extractor {
	case "trafilatura":
		return trafilatura.NewExtractor(base)
	case "readability":
		return readability.NewExtractor(base)
	default:
		return base
	}
}

// newLogger writes JSON for the server and text for interactive commands.
func newLogger(command, level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(level))
	opts := &slog.HandlerOptions{Level: lvl}

	if command == "serve" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bookmarkd.db"
	}
	dir := filepath.Join(home, ".bookmarkd")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "bookmarkd.db")
}
