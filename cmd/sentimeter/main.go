package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sentimeter"
	"github.com/fwojciec/sentimeter/fs"
	"github.com/fwojciec/sentimeter/goquery"
	senthttp "github.com/fwojciec/sentimeter/http"
	"github.com/fwojciec/sentimeter/pipeline"
	"github.com/fwojciec/sentimeter/rod"
	sentslog "github.com/fwojciec/sentimeter/slog"
	"github.com/fwojciec/sentimeter/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

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

	// Services for end-to-end testing. When set, Run uses them instead of
	// starting a browser or connecting to the classification service.
	Extractor  sentimeter.Extractor
	Classifier sentimeter.Classifier

	// Runs is the run archive, set once the database is open.
	Runs sentimeter.RunService
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
		kong.Name("sentimeter"),
		kong.Description("Classify the sentiment of YouTube video comments"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sentimeter --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	cmd := strings.Fields(kongCtx.Command())[0]

	switch cmd {
	case "analyze":
		// Reject pages that cannot be analyzed before starting a browser or
		// fetching anything.
		matcher, err := sentimeter.NewContextMatcher(cli.Analyze.Pattern)
		if err == nil {
			err = pipeline.CheckContext(matcher, cli.Analyze.URL)
		}
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", sentimeter.ErrorMessage(err))
			return err
		}

		if !cli.Analyze.NoHistory {
			// History is optional for analysis: without it the run still succeeds.
			if err := m.openDB(); err != nil {
				deps.Logger.Warn("run history unavailable", "path", m.DBPath, "err", err)
			} else {
				defer m.Close()
			}
		}

		extractor, err := m.openExtractor(ctx, &cli.Analyze, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", sentimeter.ErrorMessage(err))
			return err
		}
		defer extractor.Close()

		classifier, err := m.openClassifier(&cli.Analyze, deps.Logger)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", sentimeter.ErrorMessage(err))
			return err
		}

		deps.Extractor = extractor
		deps.Classifier = classifier
	default:
		if err := m.openDB(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SENTIMETER_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
	}

	// Runs stays a nil interface when the database is unavailable.
	if m.Runs != nil {
		deps.Runs = m.Runs
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB() error {
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		return err
	}
	m.Runs = sqlite.NewRunService(m.DB)
	return nil
}

// openExtractor builds the extractor selected by the analyze flags.
func (m *Main) openExtractor(ctx context.Context, c *AnalyzeCmd, logger *slog.Logger) (sentimeter.Extractor, error) {
	if m.Extractor != nil {
		return sentslog.NewLoggingExtractor(m.Extractor, logger), nil
	}

	selector := c.Selector
	if selector == "" {
		selector = goquery.DefaultCommentSelector
	}
	newBrowser := func() (sentimeter.Extractor, error) {
		e, err := rod.NewExtractor(
			rod.WithFetchTimeout(c.Timeout),
			rod.WithScrolls(c.Scrolls),
			rod.WithSelector(selector),
		)
		if err != nil {
			return nil, sentimeter.WrapErrorf(err, sentimeter.EINTERNAL,
				"failed to start browser; Chrome or Chromium must be installed")
		}
		return e, nil
	}
	newFetcher := func() sentimeter.Fetcher {
		return sentslog.NewLoggingFetcher(senthttp.NewFetcher(senthttp.WithTimeout(c.Timeout)), logger)
	}

	var extractor sentimeter.Extractor
	switch {
	case c.HTML != "":
		extractor = goquery.NewExtractor(fs.NewFileFetcher(c.HTML), goquery.WithSelector(selector))
	case c.Mode == ModeStatic:
		extractor = goquery.NewExtractor(newFetcher(), goquery.WithSelector(selector))
	case c.Mode == ModeAuto:
		e, err := ProbeExtractor(ctx, c.URL, newFetcher(), selector, newBrowser)
		if err != nil {
			return nil, err
		}
		extractor = e
	default:
		e, err := newBrowser()
		if err != nil {
			return nil, err
		}
		extractor = e
	}
	return sentslog.NewLoggingExtractor(extractor, logger), nil
}

// openClassifier builds the client for the classification service.
func (m *Main) openClassifier(c *AnalyzeCmd, logger *slog.Logger) (sentimeter.Classifier, error) {
	if m.Classifier != nil {
		return sentslog.NewLoggingClassifier(m.Classifier, logger), nil
	}

	opts := []senthttp.ClientOption{senthttp.WithClientTimeout(c.APITimeout)}
	if c.APIRate > 0 {
		opts = append(opts, senthttp.WithRateLimit(c.APIRate))
	}
	client, err := senthttp.NewClient(c.API, opts...)
	if err != nil {
		return nil, err
	}
	return sentslog.NewLoggingClassifier(client, logger), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("SENTIMETER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sentimeter.db"
	}
	dir := filepath.Join(home, ".sentimeter")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sentimeter.db")
}
