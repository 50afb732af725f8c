package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/idelchi/fstat/internal/fstat"
)

// run executes a scan with the given flag surface and renders the result.
func run(path string, flags Flags) error {
	if !slices.Contains(allowedFormats, flags.Format) {
		return fmt.Errorf("invalid output format %q: must be one of %v", flags.Format, allowedFormats)
	}

	if !slices.Contains(allowedSorts, flags.Sort) {
		return fmt.Errorf("invalid sort field %q: must be one of %v", flags.Sort, allowedSorts)
	}

	filters, err := toFilters(flags)
	if err != nil {
		return err
	}

	logger, err := newLogger(flags)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck // Syncing stderr can fail on some platforms

	opts := fstat.Options{
		Detail: flags.Format != "summary" && !flags.SummaryOnly,
		SortBy: fstat.SortBy(flags.Sort),
	}

	stats, err := fstat.Scan(path, filters, opts, logger)
	if err != nil {
		return err
	}

	options := FormatterOptions{
		UseColors:       useColors(flags),
		Limit:           flags.Limit,
		SummaryOnly:     flags.SummaryOnly,
		ShowPermissions: flags.ShowPermissions,
		ShowTimes:       flags.ShowTimes,
	}

	if err := Render(stats, flags.Format, os.Stdout, options); err != nil {
		return err
	}

	// Warnings travel inside the JSON document; for human formats they
	// are summarized on stderr instead so results stay parseable.
	if len(stats.Warnings) > 0 && flags.Format != "json" && !flags.Quiet {
		fmt.Fprintf(os.Stderr, "%d entries skipped (permission or metadata errors)\n", len(stats.Warnings))
	}

	return nil
}

// newLogger builds the CLI logger: debug output with --verbose, errors
// only with --quiet, warnings otherwise.
func newLogger(flags Flags) (*zap.Logger, error) {
	if flags.Verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}

	if flags.Quiet {
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	return cfg.Build()
}

// useColors enables ANSI colors only for terminal-bound human formats.
func useColors(flags Flags) bool {
	if flags.Quiet {
		return false
	}

	switch flags.Format {
	case "json", "csv":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd())
	}
}
