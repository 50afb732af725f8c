package fstat

import "errors"

// Fatal error kinds returned by Scan. Per-entry failures are never
// returned as errors; they are recorded as Warnings on the result.
var (
	// ErrPathNotFound indicates the scan root does not exist.
	ErrPathNotFound = errors.New("path not found")

	// ErrPermissionDenied indicates the scan root itself is unreadable.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStatsOverflow indicates the total size accumulator would
	// overflow. Surfaced distinctly from I/O errors since it reports a
	// data-scale problem, not an access problem.
	ErrStatsOverflow = errors.New("statistics overflow")

	// ErrInvalidFilter indicates an inconsistent filter configuration,
	// detected before any traversal starts.
	ErrInvalidFilter = errors.New("invalid filter configuration")
)
