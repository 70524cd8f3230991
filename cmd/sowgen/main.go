package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/dgallion1/sowgen/internal/config"
	"github.com/dgallion1/sowgen/internal/excerpt"
	"github.com/dgallion1/sowgen/internal/guide"
	"github.com/dgallion1/sowgen/internal/llm"
	"github.com/dgallion1/sowgen/internal/parser"
	"github.com/dgallion1/sowgen/internal/pipeline"
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
	// Config is loaded from the environment by NewMain.
	Config config.Config

	// Completer overrides the configured model. Used by tests.
	Completer llm.Completer
}

// NewMain returns a new instance of Main with configuration from the
// environment.
func NewMain() *Main {
	return &Main{Config: config.Load()}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	log := slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	if m.Config.LogFile != "" {
		log = m.Config.NewLogger()
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: m.Config,
		Log:    log,
	}

	cli := &CLI{}
	kp, err := kong.New(cli,
		kong.Name("sowgen"),
		kong.Description("Generate an Oracle DB migration guide and Statement of Work"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = kp.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sowgen --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = kp.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := kp.Parse(args)
	if err != nil {
		return err
	}

	deps.Guides = m.newFetcher(log)
	deps.Excerpts = excerpt.New(
		excerpt.WithReaderOptions(readerOptions(m.Config)),
		excerpt.WithLogger(log.With("component", "excerpt")),
	)

	if kongCtx.Command() == "generate" {
		deps.Completer = m.Completer
		if deps.Completer == nil {
			if err := m.Config.Validate(); err != nil {
				fmt.Fprintln(stderr, "Hint: set LLM_PROVIDER and the matching API key, or put them in .env")
				return err
			}
			c, err := llm.New(ctx, pipeline.LLMSettings(m.Config))
			if err != nil {
				return err
			}
			deps.Completer = c
		}
	}

	return kongCtx.Run(deps)
}

func (m *Main) newFetcher(log *slog.Logger) *guide.Fetcher {
	return guide.NewFetcher(
		guide.WithTimeout(m.Config.GuideHTTPTimeout),
		guide.WithOrigin(m.Config.GuideOrigin),
		guide.WithSubpath(m.Config.GuideSubpath),
		guide.WithContentRegion(m.Config.GuideSelector),
		guide.WithRateLimit(m.Config.GuideRateLimit),
		guide.WithLogger(log.With("component", "guide")),
	)
}

func readerOptions(cfg config.Config) parser.Options {
	return parser.Options{FallbackPdftotext: cfg.PDFFallbackPdftotext}
}
