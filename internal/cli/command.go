// Package cli implements the fstat command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/fstat/internal/config"
	"github.com/idelchi/fstat/internal/fstat"
)

// Flags collects the raw command-line surface before it is mapped onto
// fstat.FileFilters and fstat.Options.
type Flags struct {
	Format          string
	Sort            string
	All             bool
	NoRecursive     bool
	Depth           int
	Limit           int
	SummaryOnly     bool
	Extensions      []string
	MinSize         string
	MaxSize         string
	Verbose         bool
	Quiet           bool
	ShowPermissions bool
	ShowTimes       bool
}

var (
	allowedFormats = []string{"table", "json", "csv", "summary"}
	allowedSorts   = []string{"name", "size", "modified", "type"}
)

// New builds the root command.
func New(version string) *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "fstat [flags] [path]",
		Short: "Display file statistics in human-readable format",
		Long: heredoc.Doc(`
			fstat analyzes a file or directory tree and reports aggregate
			statistics: counts, total size, a size-distribution histogram,
			per-extension breakdowns and per-entry detail.

			Examples:
			  fstat                               Analyze the current directory
			  fstat /var/log                      Analyze a specific directory
			  fstat . --format json               Output as JSON
			  fstat /home --sort size --limit 10  Ten largest entries first
		`),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := config.Load()
			if err != nil {
				return err
			}

			applyDefaults(cmd, &flags, defaults)

			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			return run(path, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Format, "format", "f", "table", "Output format: table, json, csv or summary")
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "name", "Sort entries by: name, size, modified or type")
	cmd.Flags().BoolVarP(&flags.All, "all", "a", false, "Include hidden files and directories")
	cmd.Flags().BoolVarP(&flags.NoRecursive, "no-recursive", "R", false, "Only scan the immediate children of the root")
	cmd.Flags().IntVarP(&flags.Depth, "depth", "d", -1, "Maximum depth for recursive scanning (-1 = unlimited)")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "Limit number of entries shown in detailed output (0 = all)")
	cmd.Flags().BoolVar(&flags.SummaryOnly, "summary-only", false, "Show only summary statistics")
	cmd.Flags().StringSliceVarP(&flags.Extensions, "ext", "x", nil,
		"Extensions to include (e.g. txt,log); 'no_extension' matches files without one")
	cmd.Flags().StringVar(&flags.MinSize, "min-size", "", "Minimum file size (e.g. 1KiB)")
	cmd.Flags().StringVar(&flags.MaxSize, "max-size", "", "Maximum file size (e.g. 100MiB)")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().BoolVarP(&flags.Quiet, "quiet", "q", false, "Suppress everything except results")
	cmd.Flags().BoolVar(&flags.ShowPermissions, "show-permissions", false, "Show file permissions in output")
	cmd.Flags().BoolVar(&flags.ShowTimes, "show-times", false, "Show modification times in output")
	cmd.Flags().SortFlags = false

	return cmd
}

// applyDefaults substitutes environment defaults for flags the user did
// not set explicitly.
func applyDefaults(cmd *cobra.Command, flags *Flags, defaults *config.Defaults) {
	if !cmd.Flags().Changed("format") {
		flags.Format = defaults.Format
	}

	if !cmd.Flags().Changed("sort") {
		flags.Sort = defaults.Sort
	}

	if !cmd.Flags().Changed("all") && defaults.All {
		flags.All = true
	}

	if !cmd.Flags().Changed("limit") && defaults.Limit > 0 {
		flags.Limit = defaults.Limit
	}
}

// toFilters maps the flag surface onto the scan configuration.
func toFilters(flags Flags) (fstat.FileFilters, error) {
	filters := fstat.FileFilters{
		IncludeHidden: flags.All,
		Recursive:     !flags.NoRecursive,
	}

	if len(flags.Extensions) > 0 {
		filters.Extensions = make(map[string]struct{}, len(flags.Extensions))

		for _, ext := range flags.Extensions {
			ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
			if ext == "" {
				continue
			}

			filters.Extensions[ext] = struct{}{}
		}
	}

	if flags.MinSize != "" {
		size, err := humanize.ParseBytes(flags.MinSize)
		if err != nil {
			return filters, fmt.Errorf("invalid min-size: %w", err)
		}

		minSize := int64(size)
		filters.MinSize = &minSize
	}

	if flags.MaxSize != "" {
		size, err := humanize.ParseBytes(flags.MaxSize)
		if err != nil {
			return filters, fmt.Errorf("invalid max-size: %w", err)
		}

		maxSize := int64(size)
		filters.MaxSize = &maxSize
	}

	if flags.Depth >= 0 {
		depth := flags.Depth
		filters.MaxDepth = &depth
	}

	return filters, nil
}
