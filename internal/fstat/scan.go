package fstat

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options controls what a scan retains beyond the aggregate statistics.
type Options struct {
	// Detail buffers the filtered entry list on the result.
	Detail bool
	// SortBy orders the buffered entries; ignored without Detail.
	SortBy SortBy
}

// Scan walks the tree rooted at root, applies filters to each observed
// entry and aggregates statistics over the retained ones in one pass.
//
// A missing or unreadable root is fatal. Failures on individual entries
// are recorded as warnings on the result and never abort the scan.
// Symbolic links are reported from their own metadata and never
// followed.
func Scan(root string, filters FileFilters, opts Options, logger *zap.Logger) (*FileStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if root == "" {
		root = "."
	}

	root = filepath.Clean(root)

	if err := filters.Validate(); err != nil {
		return nil, err
	}

	info, err := os.Lstat(root)
	if err != nil {
		return nil, classifyRootErr(root, err)
	}

	start := time.Now()
	agg := newAggregator(opts.Detail)

	if !info.IsDir() {
		// Single-file root: exactly one entry, recursion settings do
		// not apply.
		entry := newEntry(root, info)
		if filters.Matches(entry) {
			if err := agg.add(entry); err != nil {
				return nil, err
			}
		}

		return finish(agg, opts, start), nil
	}

	logger.Debug("scanning directory", zap.String("path", root))

	if err := walk(root, filters, agg, logger); err != nil {
		return nil, err
	}

	return finish(agg, opts, start), nil
}

// walk traverses the directory tree depth-first, sequentially, yielding
// every node allowed by the traversal policy into the aggregator.
// Filtering never prunes traversal: a directory that fails the filter is
// still descended into, since children may independently match.
func walk(root string, filters FileFilters, agg *aggregator, logger *zap.Logger) error {
	// Depth is measured in directory levels below the root; the root's
	// children sit at depth 0. limit < 0 means unbounded.
	limit := -1

	switch {
	case !filters.Recursive:
		limit = 0
	case filters.MaxDepth != nil:
		limit = *filters.MaxDepth
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				// The root listing itself failed: no partial result.
				return classifyRootErr(root, err)
			}

			logger.Warn("skipping unreadable entry", zap.String("path", path), zap.Error(err))
			agg.warn(filepath.ToSlash(path), err.Error())

			return nil
		}

		// The root is a boundary, not an entry.
		if path == root {
			return nil
		}

		if !filters.IncludeHidden && isHidden(d.Name()) {
			logger.Debug("skipping hidden entry", zap.String("path", path))

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		info, err := d.Info()
		if err != nil {
			logger.Warn("skipping entry with unreadable metadata", zap.String("path", path), zap.Error(err))
			agg.warn(filepath.ToSlash(path), err.Error())

			return nil
		}

		entry := newEntry(path, info)
		if filters.Matches(entry) {
			if err := agg.add(entry); err != nil {
				return err
			}
		} else {
			logger.Debug("filtered out", zap.String("path", path))
		}

		// A directory at the depth limit is yielded but not descended
		// into.
		if d.IsDir() && limit >= 0 && entryDepth(path, root) >= limit {
			return filepath.SkipDir
		}

		return nil
	})
}

// finish sorts the buffered entries, if any, and stamps the duration.
func finish(agg *aggregator, opts Options, start time.Time) *FileStats {
	stats := agg.finalize()

	if opts.Detail && len(stats.Entries) > 1 {
		SortEntries(stats.Entries, opts.SortBy)
	}

	stats.Elapsed = time.Since(start)

	return stats
}

// newEntry builds an immutable FileEntry from Lstat metadata. Symlinks
// are described by the link itself, never the target.
func newEntry(path string, info fs.FileInfo) FileEntry {
	entry := FileEntry{
		Path:  filepath.ToSlash(path),
		IsDir: info.IsDir(),
	}

	if !entry.IsDir {
		entry.Size = info.Size()
		entry.Extension = extensionOf(path)
	}

	if mod := info.ModTime(); !mod.IsZero() {
		entry.ModTime = &mod
	}

	entry.Permissions = permissionsOf(info)

	return entry
}

// entryDepth returns the number of directory levels between root and
// path; the root's immediate children are at depth 0.
func entryDepth(path, root string) int {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))

	return strings.Count(rel, string(filepath.Separator))
}

// isHidden reports whether name starts with a dot.
func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// classifyRootErr maps a failure on the scan root onto the fatal error
// taxonomy, keeping the OS error text for display.
func classifyRootErr(root string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrPathNotFound, root)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %v", ErrPermissionDenied, root, err)
	default:
		return fmt.Errorf("accessing path %q: %w", root, err)
	}
}
