//go:build windows

package fstat

import "io/fs"

// permissionsOf reports no permissions: Windows has no POSIX mode bits.
func permissionsOf(_ fs.FileInfo) *uint32 {
	return nil
}
