//go:build !windows

package fstat

import (
	"io/fs"
	"syscall"
)

// permissionsOf extracts the POSIX permission bits from info.
func permissionsOf(info fs.FileInfo) *uint32 {
	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		perm := uint32(stat.Mode) & 0o7777

		return &perm
	}

	perm := uint32(info.Mode().Perm())

	return &perm
}
