// Package main provides a CLI that runs one refresh and prints the report.
// Usage: newspulse-insights ["query"] [--language en] [--count 20] [--top 10] [--min-mentions 2] [--output json]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"newspulse/internal/app"
	"newspulse/internal/config"
	"newspulse/internal/handler/http/insight"
	"newspulse/internal/observability/logging"
	"newspulse/internal/render"
	"newspulse/internal/usecase/aggregate"
	fetchUC "newspulse/internal/usecase/fetch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("newspulse-insights", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		language     string
		count        int
		top          int
		minMentions  int
		provider     string
		scorerKind   string
		outputFormat string
		timeout      time.Duration
	)
	fs.StringVar(&language, "language", "", "Two-letter language code (default: DEFAULT_LANGUAGE or en)")
	fs.IntVar(&count, "count", 0, "Number of articles to fetch, 1-100 (default: DEFAULT_COUNT or 20)")
	fs.IntVar(&top, "top", 0, "Countries in the ranking, negative for all (default: TOP_COUNTRIES or 10)")
	fs.IntVar(&minMentions, "min-mentions", 0, "Minimum mentions for the country sentiment table (default: MIN_COUNTRY_MENTIONS or 2)")
	fs.StringVar(&provider, "provider", "", "Article source: newsapi or rss (default: NEWS_PROVIDER)")
	fs.StringVar(&scorerKind, "scorer", "", "Sentiment scorer: lexicon, claude or openai (default: SENTIMENT_SCORER)")
	fs.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	fs.DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the refresh")
	fs.Usage = func() {
		_, _ = fmt.Fprintln(stderr, "Usage: newspulse-insights [\"query\"] [flags]")
		_, _ = fmt.Fprintln(stderr, "")
		_, _ = fmt.Fprintln(stderr, "Examples:")
		_, _ = fmt.Fprintln(stderr, "  newspulse-insights")
		_, _ = fmt.Fprintln(stderr, "  newspulse-insights \"solar panels\" --count 50 --top 5")
		_, _ = fmt.Fprintln(stderr, "  newspulse-insights \"semiconductors\" --provider rss --output json")
		_, _ = fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if outputFormat != "text" && outputFormat != "json" {
		_, _ = fmt.Fprintf(stderr, "Error: unknown output format %q (want text or json)\n", outputFormat)
		return 2
	}
	if minMentions < 0 {
		_, _ = fmt.Fprintln(stderr, "Error: min-mentions must be positive")
		return 2
	}

	// Logs go to stderr so the report on stdout stays clean.
	logger := logging.New(logging.Options{
		Format: logging.FormatText,
		Level:  os.Getenv("LOG_LEVEL"),
		Writer: stderr,
	})
	slog.SetDefault(logger)

	if provider != "" {
		_ = os.Setenv("NEWS_PROVIDER", provider)
	}
	if scorerKind != "" {
		_ = os.Setenv("SENTIMENT_SCORER", scorerKind)
	}

	cfg, err := config.LoadAppConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "Error: Invalid configuration: %v\n", err)
		return 1
	}

	pipeline, err := app.Build(cfg)
	if err != nil {
		logger.Error("failed to build pipeline", slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	q := fetchUC.Query{Language: language, Count: count}
	if fs.NArg() > 0 {
		q.Text = fs.Arg(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	report, err := pipeline.Service.RefreshWithOptions(ctx, q, aggregate.Options{TopCountries: top, MinMentions: minMentions})
	if err != nil {
		logger.Error("refresh failed", slog.Any("error", err))
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if outputFormat == "json" {
		err = outputJSON(stdout, report)
	} else {
		err = render.Report(stdout, report)
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: Failed to write report: %v\n", err)
		return 1
	}
	return 0
}

// outputJSON prints the report in the same shape GET /insights returns.
func outputJSON(w io.Writer, report *fetchUC.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(insight.NewDTO(report))
}
