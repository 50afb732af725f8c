package fstat

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// NoExtension is the key used for files without an extension, both in
// FileStats.FileTypes and in FileFilters.Extensions.
const NoExtension = "no_extension"

// FileEntry represents a single filesystem object observed during a scan.
// Entries are created once during traversal and never mutated afterwards.
type FileEntry struct {
	// Path is the entry path in slash format.
	Path string `json:"path"`
	// Size is the byte length; 0 for directories.
	Size int64 `json:"size"`
	// IsDir indicates whether this entry is a directory.
	IsDir bool `json:"is_directory"`
	// Extension is the lower-cased extension without the dot, empty when
	// the entry has none. Directories never have one.
	Extension string `json:"extension,omitempty"`
	// ModTime is the last modification time, nil if unavailable.
	ModTime *time.Time `json:"modified_time,omitempty"`
	// Permissions holds the POSIX permission bits, nil on platforms
	// without them.
	Permissions *uint32 `json:"permissions,omitempty"`
}

// Name returns the base name of the entry.
func (e FileEntry) Name() string {
	return filepath.Base(e.Path)
}

// extensionOf returns the lower-cased extension of path without the dot.
// Dotfiles like .htaccess have no extension.
func extensionOf(path string) string {
	name := filepath.Base(path)

	ext := filepath.Ext(name)
	if ext == "" || ext == "." || ext == name {
		return ""
	}

	return strings.ToLower(ext[1:])
}

// FileFilters describes which entries a scan retains, together with the
// traversal policy. Filters are read-only for the duration of a scan.
type FileFilters struct {
	// IncludeHidden retains entries whose name starts with a dot.
	IncludeHidden bool
	// Extensions is the set of allowed extensions, lower-cased and
	// without the dot. Empty means all. The NoExtension key admits
	// entries that have no extension.
	Extensions map[string]struct{}
	// MinSize and MaxSize are inclusive byte bounds applied to files
	// only; nil means unbounded. Directories are exempt from size
	// filtering.
	MinSize *int64
	MaxSize *int64
	// Recursive enables descent below the root's immediate children.
	Recursive bool
	// MaxDepth limits descent when Recursive is set: depth 0 means the
	// root's immediate children only. nil means unbounded.
	MaxDepth *int
}

// Validate reports configuration errors. It runs before any traversal so
// that a bad configuration never produces a partial scan.
func (f FileFilters) Validate() error {
	if f.MinSize != nil && f.MaxSize != nil && *f.MinSize > *f.MaxSize {
		return fmt.Errorf("%w: min size %d exceeds max size %d", ErrInvalidFilter, *f.MinSize, *f.MaxSize)
	}

	if f.MaxDepth != nil && *f.MaxDepth < 0 {
		return fmt.Errorf("%w: negative max depth %d", ErrInvalidFilter, *f.MaxDepth)
	}

	return nil
}

// Matches reports whether entry passes the retention filters. It is a
// pure predicate with no dependency on traversal order. Size bounds
// apply to files only; an entry without an extension passes an extension
// filter only when the set contains NoExtension.
func (f FileFilters) Matches(entry FileEntry) bool {
	if len(f.Extensions) > 0 {
		key := entry.Extension
		if key == "" {
			key = NoExtension
		}

		if _, ok := f.Extensions[key]; !ok {
			return false
		}
	}

	if !entry.IsDir {
		if f.MinSize != nil && entry.Size < *f.MinSize {
			return false
		}

		if f.MaxSize != nil && entry.Size > *f.MaxSize {
			return false
		}
	}

	return true
}
