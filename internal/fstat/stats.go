package fstat

import (
	"fmt"
	"math"
	"time"
)

// TypeStats aggregates the files sharing one extension.
type TypeStats struct {
	// Count is the number of files with this extension.
	Count int64 `json:"count"`
	// TotalSize is the cumulative size in bytes.
	TotalSize int64 `json:"total_size"`
	// AvgSize is TotalSize / Count, derived at the end of the scan.
	AvgSize int64 `json:"avg_size"`
}

// Size bucket boundaries, 1024-based. Each file falls into exactly one
// bucket; directories are excluded from the distribution entirely.
const (
	bucketSmall  = 1 << 10
	bucketMedium = 1 << 20
	bucketLarge  = 100 << 20
	bucketHuge   = 1 << 30
)

// SizeDistribution counts files per size bucket.
type SizeDistribution struct {
	// Tiny counts files smaller than 1 KiB.
	Tiny int64 `json:"tiny"`
	// Small counts files from 1 KiB up to 1 MiB.
	Small int64 `json:"small"`
	// Medium counts files from 1 MiB up to 100 MiB.
	Medium int64 `json:"medium"`
	// Large counts files from 100 MiB up to 1 GiB.
	Large int64 `json:"large"`
	// Huge counts files of 1 GiB and above.
	Huge int64 `json:"huge"`
}

// add classifies size into exactly one bucket.
func (d *SizeDistribution) add(size int64) {
	switch {
	case size < bucketSmall:
		d.Tiny++
	case size < bucketMedium:
		d.Small++
	case size < bucketLarge:
		d.Medium++
	case size < bucketHuge:
		d.Large++
	default:
		d.Huge++
	}
}

// Warning records a non-fatal, per-entry failure observed during a scan.
type Warning struct {
	// Path is the entry that could not be read or stat'd.
	Path string `json:"path"`
	// Reason is the OS error text.
	Reason string `json:"reason"`
}

// FileStats is the aggregate result of a scan.
type FileStats struct {
	// TotalFiles is the number of retained non-directory entries.
	TotalFiles int64 `json:"total_files"`
	// TotalDirs is the number of retained directories.
	TotalDirs int64 `json:"total_dirs"`
	// TotalSize is the sum of file sizes; directories contribute 0.
	TotalSize int64 `json:"total_size"`
	// AvgFileSize is TotalSize / TotalFiles, 0 when no files were seen.
	AvgFileSize int64 `json:"avg_file_size"`
	// LargestFileSize and SmallestFileSize are extrema over files only,
	// 0 when no files were seen. Ties keep the first-encountered value.
	LargestFileSize  int64 `json:"largest_file_size"`
	SmallestFileSize int64 `json:"smallest_file_size"`
	// FileTypes maps extensions (or NoExtension) to their statistics.
	FileTypes map[string]TypeStats `json:"file_types"`
	// SizeDistribution is the per-bucket file count histogram.
	SizeDistribution SizeDistribution `json:"size_distribution"`
	// Entries is the buffered, filtered entry list. Populated only when
	// the scan was asked for detail; the scalar and mapping statistics
	// above are computed regardless.
	Entries []FileEntry `json:"entries,omitempty"`
	// Warnings lists per-entry failures in the order they were hit.
	Warnings []Warning `json:"warnings,omitempty"`
	// Elapsed is the total scan duration.
	Elapsed time.Duration `json:"elapsed"`
}

// aggregator consumes the filtered entry stream in a single pass. Each
// add is O(1); the only state beyond the running accumulators is the
// extension map and, when detail is requested, the entry buffer.
type aggregator struct {
	stats    FileStats
	detail   bool
	haveFile bool
}

func newAggregator(detail bool) *aggregator {
	return &aggregator{
		stats:  FileStats{FileTypes: make(map[string]TypeStats)},
		detail: detail,
	}
}

// add folds one retained entry into the running statistics.
func (a *aggregator) add(entry FileEntry) error {
	if a.detail {
		a.stats.Entries = append(a.stats.Entries, entry)
	}

	if entry.IsDir {
		a.stats.TotalDirs++

		return nil
	}

	if entry.Size > math.MaxInt64-a.stats.TotalSize {
		return fmt.Errorf("%w: total size exceeds %d bytes", ErrStatsOverflow, int64(math.MaxInt64))
	}

	a.stats.TotalFiles++
	a.stats.TotalSize += entry.Size
	a.stats.SizeDistribution.add(entry.Size)

	// First-encountered wins on equal sizes, for reproducible output.
	if !a.haveFile {
		a.stats.LargestFileSize = entry.Size
		a.stats.SmallestFileSize = entry.Size
		a.haveFile = true
	} else {
		if entry.Size > a.stats.LargestFileSize {
			a.stats.LargestFileSize = entry.Size
		}

		if entry.Size < a.stats.SmallestFileSize {
			a.stats.SmallestFileSize = entry.Size
		}
	}

	key := entry.Extension
	if key == "" {
		key = NoExtension
	}

	stat := a.stats.FileTypes[key]
	stat.Count++
	stat.TotalSize += entry.Size
	a.stats.FileTypes[key] = stat

	return nil
}

// warn records a non-fatal per-entry failure.
func (a *aggregator) warn(path, reason string) {
	a.stats.Warnings = append(a.stats.Warnings, Warning{Path: path, Reason: reason})
}

// finalize derives the averages from the accumulated totals. Averages
// are computed here rather than maintained incrementally to avoid
// floating-point drift.
func (a *aggregator) finalize() *FileStats {
	if a.stats.TotalFiles > 0 {
		a.stats.AvgFileSize = a.stats.TotalSize / a.stats.TotalFiles
	}

	for key, stat := range a.stats.FileTypes {
		if stat.Count > 0 {
			stat.AvgSize = stat.TotalSize / stat.Count
		}

		a.stats.FileTypes[key] = stat
	}

	stats := a.stats

	return &stats
}
