package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/fstat/internal/fstat"
)

// ANSI escape sequences for table output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	timeLayout    = "2006-01-02 15:04"
	timeLayoutCSV = "2006-01-02 15:04:05"
)

// FormatterOptions controls how statistics are rendered.
type FormatterOptions struct {
	// UseColors enables ANSI colors in table output.
	UseColors bool
	// Limit caps the number of entries shown; 0 shows all.
	Limit int
	// SummaryOnly suppresses the per-entry table.
	SummaryOnly bool
	// ShowPermissions adds an octal permissions column.
	ShowPermissions bool
	// ShowTimes adds a modification time column.
	ShowTimes bool
}

// Render writes stats to writer in the requested format.
func Render(stats *fstat.FileStats, format string, writer io.Writer, options FormatterOptions) error {
	switch format {
	case "json":
		return renderJSON(stats, writer)
	case "csv":
		return renderCSV(stats, writer, options)
	case "summary":
		return renderSummary(stats, writer)
	default:
		return renderTable(stats, writer, options)
	}
}

// renderJSON outputs the full statistics document.
func renderJSON(stats *fstat.FileStats, writer io.Writer) error {
	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// renderCSV outputs one row per buffered entry.
func renderCSV(stats *fstat.FileStats, writer io.Writer, options FormatterOptions) error {
	cw := csv.NewWriter(writer)

	header := []string{"path", "size_bytes", "size_human", "is_directory", "file_type"}
	if options.ShowPermissions {
		header = append(header, "permissions")
	}
	if options.ShowTimes {
		header = append(header, "modified")
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, entry := range limitEntries(stats.Entries, options.Limit) {
		record := []string{
			entry.Path,
			strconv.FormatInt(entry.Size, 10),
			humanize.IBytes(uint64(entry.Size)),
			strconv.FormatBool(entry.IsDir),
			entry.Extension,
		}

		if options.ShowPermissions {
			record = append(record, permString(entry))
		}
		if options.ShowTimes {
			record = append(record, timeString(entry, timeLayoutCSV))
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// renderSummary outputs a compact one-line summary.
func renderSummary(stats *fstat.FileStats, writer io.Writer) error {
	_, err := fmt.Fprintf(writer, "Files: %s | Dirs: %s | Size: %s | Avg: %s\n",
		humanize.Comma(stats.TotalFiles),
		humanize.Comma(stats.TotalDirs),
		humanize.IBytes(uint64(stats.TotalSize)),
		humanize.IBytes(uint64(stats.AvgFileSize)))

	return err
}

// renderTable outputs statistics in human-readable table format.
func renderTable(stats *fstat.FileStats, writer io.Writer, options FormatterOptions) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	writeSummaryHeader(w, stats, options)

	if !options.SummaryOnly && len(stats.Entries) > 0 {
		fmt.Fprintln(w)
		writeEntryTable(w, stats, options)
	}

	if len(stats.FileTypes) > 0 {
		fmt.Fprintln(w)
		writeFileTypesTable(w, stats, options)
	}

	return w.Flush()
}

// writeSummaryHeader prints the scalar statistics and the distribution.
func writeSummaryHeader(w io.Writer, stats *fstat.FileStats, options FormatterOptions) {
	fmt.Fprintln(w, colorize("File Statistics Summary", colorBold+colorBlue, options.UseColors))
	fmt.Fprintln(w, strings.Repeat("=", 50))

	fmt.Fprintf(w, "Total files:\t%s\n", humanize.Comma(stats.TotalFiles))
	fmt.Fprintf(w, "Total directories:\t%s\n", humanize.Comma(stats.TotalDirs))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n", humanize.IBytes(uint64(stats.TotalSize)), stats.TotalSize)

	if stats.TotalFiles > 0 {
		fmt.Fprintf(w, "Average file size:\t%s\n", humanize.IBytes(uint64(stats.AvgFileSize)))
		fmt.Fprintf(w, "Largest file:\t%s\n", humanize.IBytes(uint64(stats.LargestFileSize)))
		fmt.Fprintf(w, "Smallest file:\t%s\n", humanize.IBytes(uint64(stats.SmallestFileSize)))
	}

	dist := stats.SizeDistribution

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Size distribution:")
	fmt.Fprintf(w, "  tiny (< 1 KiB):\t%s\n", humanize.Comma(dist.Tiny))
	fmt.Fprintf(w, "  small (1 KiB - 1 MiB):\t%s\n", humanize.Comma(dist.Small))
	fmt.Fprintf(w, "  medium (1 MiB - 100 MiB):\t%s\n", humanize.Comma(dist.Medium))
	fmt.Fprintf(w, "  large (100 MiB - 1 GiB):\t%s\n", humanize.Comma(dist.Large))
	fmt.Fprintf(w, "  huge (>= 1 GiB):\t%s\n", humanize.Comma(dist.Huge))

	fmt.Fprintf(w, "\nElapsed:\t%v\n", stats.Elapsed)
}

// writeEntryTable prints the buffered entry list.
func writeEntryTable(w io.Writer, stats *fstat.FileStats, options FormatterOptions) {
	fmt.Fprintln(w, colorize("Entries", colorBold+colorGreen, options.UseColors))

	header := "Name\tSize\tType"
	if options.ShowPermissions {
		header += "\tPermissions"
	}
	if options.ShowTimes {
		header += "\tModified"
	}
	fmt.Fprintln(w, header)

	for _, entry := range limitEntries(stats.Entries, options.Limit) {
		name := entry.Name()
		size := humanize.IBytes(uint64(entry.Size))

		kind := strings.ToUpper(entry.Extension)
		if entry.IsDir {
			kind = "DIR"
		}

		if options.UseColors {
			switch {
			case entry.IsDir:
				name = colorBlue + name + colorReset
			case entry.Size > 100_000_000:
				size = colorRed + size + colorReset
			case entry.Size > 1_000_000:
				size = colorYellow + size + colorReset
			}
		}

		row := fmt.Sprintf("%s\t%s\t%s", name, size, kind)
		if options.ShowPermissions {
			row += "\t" + permString(entry)
		}
		if options.ShowTimes {
			row += "\t" + timeString(entry, timeLayout)
		}

		fmt.Fprintln(w, row)
	}
}

// writeFileTypesTable prints the per-extension breakdown, most common
// types first.
func writeFileTypesTable(w io.Writer, stats *fstat.FileStats, options FormatterOptions) {
	fmt.Fprintln(w, colorize("File types", colorBold+colorCyan, options.UseColors))
	fmt.Fprintln(w, "Extension\tCount\tTotal size\tAvg size\tShare")

	keys := make([]string, 0, len(stats.FileTypes))
	for ext := range stats.FileTypes {
		keys = append(keys, ext)
	}

	sort.Slice(keys, func(i, j int) bool {
		a, b := stats.FileTypes[keys[i]], stats.FileTypes[keys[j]]
		if a.Count != b.Count {
			return a.Count > b.Count
		}

		return keys[i] < keys[j]
	})

	for _, ext := range keys {
		stat := stats.FileTypes[ext]

		pct := 0.0
		if stats.TotalSize > 0 {
			pct = 100.0 * float64(stat.TotalSize) / float64(stats.TotalSize)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f%%\n",
			ext,
			humanize.Comma(stat.Count),
			humanize.IBytes(uint64(stat.TotalSize)),
			humanize.IBytes(uint64(stat.AvgSize)),
			pct)
	}
}

// limitEntries caps the displayed entry list; 0 shows everything.
func limitEntries(entries []fstat.FileEntry, limit int) []fstat.FileEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}

	return entries
}

func colorize(s, color string, enabled bool) string {
	if !enabled {
		return s
	}

	return color + s + colorReset
}

// permString renders the octal permission bits, "-" when absent.
func permString(entry fstat.FileEntry) string {
	if entry.Permissions == nil {
		return "-"
	}

	return strconv.FormatUint(uint64(*entry.Permissions), 8)
}

// timeString renders the modification time, "-" when absent.
func timeString(entry fstat.FileEntry, layout string) string {
	if entry.ModTime == nil {
		return "-"
	}

	return entry.ModTime.Format(layout)
}
